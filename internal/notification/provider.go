package notification

import "context"

// Provider is the interface for channel delivery backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "email", "smtp").
	Name() string
	// Supports reports whether the provider can deliver over the given channel.
	Supports(channel Channel) bool
	// Send delivers the notification. It returns a Result on success or a
	// *ProviderError describing why delivery failed.
	Send(ctx context.Context, n *Notification) (*Result, error)
}
