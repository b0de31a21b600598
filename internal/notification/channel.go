package notification

import "strings"

// Channel is a delivery medium a notification can be routed through.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
	ChannelSlack Channel = "SLACK"
)

// AllChannels returns the closed set of supported channels.
func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelPush, ChannelSlack}
}

// Valid reports whether c is one of the recognized channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelSlack:
		return true
	}
	return false
}

// ParseChannel converts a channel string (case-insensitive) to a Channel.
// Unknown values return an InvalidArgumentError.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &InvalidArgumentError{Name: "channel"}
	}
	return c, nil
}
