package notification

import (
	"context"
	"log/slog"
)

// The simulated providers below format the delivery they would have
// performed and log it instead of talking to a real service. Constructor
// configuration (sender identity, API key) is opaque to the rest of the
// system; the FailSends switch forces the ProviderError path for drills
// and tests.

// EmailProviderConfig configures the simulated email provider.
type EmailProviderConfig struct {
	From      string
	APIKey    string
	FailSends bool
}

// EmailProvider is a simulated EMAIL channel sender.
type EmailProvider struct {
	cfg    EmailProviderConfig
	logger *slog.Logger
}

// NewEmailProvider creates a simulated email provider.
func NewEmailProvider(cfg EmailProviderConfig, logger *slog.Logger) *EmailProvider {
	return &EmailProvider{cfg: cfg, logger: logger}
}

// Name returns the provider identifier.
func (p *EmailProvider) Name() string { return "email" }

// Supports reports whether the provider handles the given channel.
func (p *EmailProvider) Supports(channel Channel) bool { return channel == ChannelEmail }

// Send simulates email delivery.
func (p *EmailProvider) Send(_ context.Context, n *Notification) (*Result, error) {
	if p.cfg.FailSends {
		return nil, &ProviderError{Provider: p.Name(), Message: "simulated delivery failure"}
	}
	p.logger.Info("email delivered",
		slog.String("notification_id", n.ID),
		slog.String("from", p.cfg.From),
		slog.String("to", n.Recipient.Email),
		slog.String("subject", n.Recipient.Meta(MetaSubject)),
		slog.String("priority", string(n.Priority)))
	return SuccessResult(n.ID, p.Name(), ChannelEmail), nil
}

// SMSProviderConfig configures the simulated SMS provider.
type SMSProviderConfig struct {
	SenderID  string
	APIKey    string
	FailSends bool
}

// SMSProvider is a simulated SMS channel sender.
type SMSProvider struct {
	cfg    SMSProviderConfig
	logger *slog.Logger
}

// NewSMSProvider creates a simulated SMS provider.
func NewSMSProvider(cfg SMSProviderConfig, logger *slog.Logger) *SMSProvider {
	return &SMSProvider{cfg: cfg, logger: logger}
}

// Name returns the provider identifier.
func (p *SMSProvider) Name() string { return "sms" }

// Supports reports whether the provider handles the given channel.
func (p *SMSProvider) Supports(channel Channel) bool { return channel == ChannelSMS }

// Send simulates SMS delivery.
func (p *SMSProvider) Send(_ context.Context, n *Notification) (*Result, error) {
	if p.cfg.FailSends {
		return nil, &ProviderError{Provider: p.Name(), Message: "simulated delivery failure"}
	}
	p.logger.Info("sms delivered",
		slog.String("notification_id", n.ID),
		slog.String("sender_id", p.cfg.SenderID),
		slog.String("to", n.Recipient.Phone),
		slog.Int("length", len(n.Message)))
	return SuccessResult(n.ID, p.Name(), ChannelSMS), nil
}

// PushProviderConfig configures the simulated push provider.
type PushProviderConfig struct {
	AppID     string
	APIKey    string
	FailSends bool
}

// PushProvider is a simulated PUSH channel sender.
type PushProvider struct {
	cfg    PushProviderConfig
	logger *slog.Logger
}

// NewPushProvider creates a simulated push provider.
func NewPushProvider(cfg PushProviderConfig, logger *slog.Logger) *PushProvider {
	return &PushProvider{cfg: cfg, logger: logger}
}

// Name returns the provider identifier.
func (p *PushProvider) Name() string { return "push" }

// Supports reports whether the provider handles the given channel.
func (p *PushProvider) Supports(channel Channel) bool { return channel == ChannelPush }

// Send simulates push delivery.
func (p *PushProvider) Send(_ context.Context, n *Notification) (*Result, error) {
	if p.cfg.FailSends {
		return nil, &ProviderError{Provider: p.Name(), Message: "simulated delivery failure"}
	}
	p.logger.Info("push delivered",
		slog.String("notification_id", n.ID),
		slog.String("app_id", p.cfg.AppID),
		slog.String("device_token", n.Recipient.Meta(MetaDeviceToken)),
		slog.String("priority", string(n.Priority)))
	return SuccessResult(n.ID, p.Name(), ChannelPush), nil
}

// SlackProviderConfig configures the simulated Slack provider.
type SlackProviderConfig struct {
	BotName   string
	APIKey    string
	FailSends bool
}

// SlackProvider is a simulated SLACK channel sender.
type SlackProvider struct {
	cfg    SlackProviderConfig
	logger *slog.Logger
}

// NewSlackProvider creates a simulated Slack provider.
func NewSlackProvider(cfg SlackProviderConfig, logger *slog.Logger) *SlackProvider {
	return &SlackProvider{cfg: cfg, logger: logger}
}

// Name returns the provider identifier.
func (p *SlackProvider) Name() string { return "slack" }

// Supports reports whether the provider handles the given channel.
func (p *SlackProvider) Supports(channel Channel) bool { return channel == ChannelSlack }

// Send simulates Slack delivery.
func (p *SlackProvider) Send(_ context.Context, n *Notification) (*Result, error) {
	if p.cfg.FailSends {
		return nil, &ProviderError{Provider: p.Name(), Message: "simulated delivery failure"}
	}
	p.logger.Info("slack message delivered",
		slog.String("notification_id", n.ID),
		slog.String("bot", p.cfg.BotName),
		slog.String("channel_id", n.Recipient.Meta(MetaSlackChannelID)))
	return SuccessResult(n.ID, p.Name(), ChannelSlack), nil
}
