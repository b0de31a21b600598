package notification

import (
	"fmt"
	"regexp"
	"strings"
)

// maxEmailLength is the RFC 5321 overall address limit.
const maxEmailLength = 254

var (
	// emailRe: dot-separated local part of alphanumerics/_+&*-, an @,
	// one or more dot-separated labels, and an alphabetic TLD of length >= 2.
	emailRe = regexp.MustCompile(`^[A-Za-z0-9_+&*-]+(?:\.[A-Za-z0-9_+&*-]+)*@(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}$`)

	// phoneRe: E.164-style number after separator stripping. Optional
	// leading +, first digit 1-9, 8 to 15 digits total.
	phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

	// phoneSeparatorRe matches the separators tolerated in phone input.
	phoneSeparatorRe = regexp.MustCompile(`[\s\-()]`)
)

// IsValidEmail reports whether s is a well-formed email address. It is
// pure and total: blank input returns false, never an error.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxEmailLength {
		return false
	}
	return emailRe.MatchString(s)
}

// IsValidPhone reports whether s is a well-formed phone number. Spaces,
// hyphens, and parentheses are stripped before matching. Pure and total.
func IsValidPhone(s string) bool {
	stripped := phoneSeparatorRe.ReplaceAllString(s, "")
	if stripped == "" {
		return false
	}
	return phoneRe.MatchString(stripped)
}

// Validate checks a notification against the preconditions of the given
// channel, stopping at the first violation. It returns nil when the
// notification may be dispatched, *InvalidArgumentError when a required
// input is absent, and *ValidationError when the content is unacceptable.
func Validate(n *Notification, channel Channel) error {
	if n == nil {
		return &InvalidArgumentError{Name: "notification"}
	}
	if !channel.Valid() {
		return &InvalidArgumentError{Name: "channel"}
	}
	if strings.TrimSpace(n.Message) == "" {
		return &ValidationError{Field: "message", Message: "message must not be empty"}
	}
	if n.Recipient == nil {
		return &ValidationError{Field: "recipient", Message: "recipient is missing"}
	}

	switch channel {
	case ChannelEmail:
		if !IsValidEmail(n.Recipient.Email) {
			return &ValidationError{Field: "email", Message: "invalid or missing email address"}
		}
	case ChannelSMS:
		if !IsValidPhone(n.Recipient.Phone) {
			return &ValidationError{Field: "phone", Message: "invalid or missing phone number"}
		}
	case ChannelPush:
		if strings.TrimSpace(n.Recipient.Meta(MetaDeviceToken)) == "" {
			return &ValidationError{
				Field:   MetaDeviceToken,
				Message: fmt.Sprintf("recipient metadata must contain a non-blank %q entry", MetaDeviceToken),
			}
		}
	case ChannelSlack:
		if strings.TrimSpace(n.Recipient.Meta(MetaSlackChannelID)) == "" {
			return &ValidationError{
				Field:   MetaSlackChannelID,
				Message: fmt.Sprintf("recipient metadata must contain a non-blank %q entry", MetaSlackChannelID),
			}
		}
	}
	return nil
}
