package notification

import (
	"context"
	"fmt"
	"log/slog"
)

// Registry holds the configured providers in registration order and picks
// the first one that supports a requested channel. It is populated once at
// startup and treated as read-only afterwards, so concurrent Dispatch
// calls need no locking.
type Registry struct {
	providers []Provider
	logger    *slog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends a provider. When the new provider overlaps a channel
// already claimed by an earlier registration, a warning is logged and the
// earlier registration keeps winning for that channel.
func (r *Registry) Register(p Provider) {
	for _, existing := range r.providers {
		for _, ch := range AllChannels() {
			if existing.Supports(ch) && p.Supports(ch) {
				r.logger.Warn("provider overlaps an already registered channel, first registration wins",
					slog.String("provider", p.Name()),
					slog.String("registered", existing.Name()),
					slog.String("channel", string(ch)))
			}
		}
	}
	r.providers = append(r.providers, p)
}

// Dispatch routes the notification to the first registered provider that
// supports the channel and returns the provider's result or error
// unchanged. When no provider supports the channel it returns a
// *ProviderError carrying the ProviderNone sentinel, a configuration
// error distinct from validation failures.
func (r *Registry) Dispatch(ctx context.Context, n *Notification, channel Channel) (*Result, error) {
	for _, p := range r.providers {
		if p.Supports(channel) {
			return p.Send(ctx, n)
		}
	}
	return nil, &ProviderError{
		Provider: ProviderNone,
		Message:  fmt.Sprintf("no provider registered for channel %s", channel),
	}
}

// ProviderInfo describes a registered provider for listings.
type ProviderInfo struct {
	Name     string    `json:"name"`
	Channels []Channel `json:"channels"`
}

// Providers returns the registered providers in registration order along
// with the channels each one supports.
func (r *Registry) Providers() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(r.providers))
	for _, p := range r.providers {
		info := ProviderInfo{Name: p.Name()}
		for _, ch := range AllChannels() {
			if p.Supports(ch) {
				info.Channels = append(info.Channels, ch)
			}
		}
		infos = append(infos, info)
	}
	return infos
}
