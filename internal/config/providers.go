package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SMTPSettings configures the optional real SMTP transport for the email
// channel.
type SMTPSettings struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	FromAddr   string `yaml:"from_address"`
	Encryption string `yaml:"encryption"` // "none", "starttls", "ssl_tls"
}

// EmailChannel configures the EMAIL channel provider.
type EmailChannel struct {
	Enabled   bool         `yaml:"enabled"`
	Transport string       `yaml:"transport"` // "simulated" (default) or "smtp"
	From      string       `yaml:"from"`
	APIKey    string       `yaml:"api_key"`
	FailSends bool         `yaml:"fail_sends"`
	SMTP      SMTPSettings `yaml:"smtp"`
}

// SMSChannel configures the SMS channel provider.
type SMSChannel struct {
	Enabled   bool   `yaml:"enabled"`
	SenderID  string `yaml:"sender_id"`
	APIKey    string `yaml:"api_key"`
	FailSends bool   `yaml:"fail_sends"`
}

// PushChannel configures the PUSH channel provider.
type PushChannel struct {
	Enabled   bool   `yaml:"enabled"`
	AppID     string `yaml:"app_id"`
	APIKey    string `yaml:"api_key"`
	FailSends bool   `yaml:"fail_sends"`
}

// SlackChannel configures the SLACK channel provider.
type SlackChannel struct {
	Enabled   bool   `yaml:"enabled"`
	BotName   string `yaml:"bot_name"`
	APIKey    string `yaml:"api_key"`
	FailSends bool   `yaml:"fail_sends"`
}

// ProviderRegistry is the parsed provider registry file. It decides which
// channel providers get registered at startup and with what identity.
type ProviderRegistry struct {
	Email EmailChannel `yaml:"email"`
	SMS   SMSChannel   `yaml:"sms"`
	Push  PushChannel  `yaml:"push"`
	Slack SlackChannel `yaml:"slack"`
}

// DefaultProviderRegistry returns the configuration used when no registry
// file exists: every channel enabled with its simulated provider.
func DefaultProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		Email: EmailChannel{Enabled: true, Transport: "simulated", From: "noreply@courier.local"},
		SMS:   SMSChannel{Enabled: true, SenderID: "COURIER"},
		Push:  PushChannel{Enabled: true, AppID: "courier"},
		Slack: SlackChannel{Enabled: true, BotName: "courier-bot"},
	}
}

// LoadProviderRegistry reads the provider registry YAML file at filePath.
// If the file does not exist, the default registry is returned (not an
// error). Secrets may reference environment variables with ${VAR} syntax.
func LoadProviderRegistry(filePath string) (*ProviderRegistry, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is from admin-configured data dir
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProviderRegistry(), nil
		}
		return nil, fmt.Errorf("reading provider registry %q: %w", filePath, err)
	}

	var reg ProviderRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing provider registry %q: %w", filePath, err)
	}

	reg.Email.APIKey = os.ExpandEnv(reg.Email.APIKey)
	reg.Email.SMTP.Password = os.ExpandEnv(reg.Email.SMTP.Password)
	reg.SMS.APIKey = os.ExpandEnv(reg.SMS.APIKey)
	reg.Push.APIKey = os.ExpandEnv(reg.Push.APIKey)
	reg.Slack.APIKey = os.ExpandEnv(reg.Slack.APIKey)

	return &reg, nil
}
