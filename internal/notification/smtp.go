package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// defaultSubject is used when the recipient metadata carries no subject.
const defaultSubject = "Courier notification"

// SMTPConfig holds connection parameters for the SMTP email provider.
type SMTPConfig struct {
	Host       string `json:"host" yaml:"host"`
	Port       int    `json:"port" yaml:"port"`
	Username   string `json:"username" yaml:"username"`
	Password   string `json:"password" yaml:"password"`
	FromAddr   string `json:"from_address" yaml:"from_address"`
	Encryption string `json:"encryption" yaml:"encryption"` // "none", "starttls", "ssl_tls"
}

// SMTPProvider delivers EMAIL notifications over a real SMTP server using
// the go-mail library. It is the only provider performing actual I/O and
// is selected instead of the simulated email provider via configuration.
type SMTPProvider struct {
	config SMTPConfig
}

// NewSMTPProvider creates a new SMTPProvider with the given configuration.
func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	return &SMTPProvider{config: config}
}

// Name returns the provider identifier.
func (p *SMTPProvider) Name() string { return "smtp" }

// Supports reports whether the provider handles the given channel.
func (p *SMTPProvider) Supports(channel Channel) bool { return channel == ChannelEmail }

// Send delivers the notification to the recipient's email address.
func (p *SMTPProvider) Send(ctx context.Context, n *Notification) (*Result, error) {
	m := mail.NewMsg()
	if err := m.From(p.config.FromAddr); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("invalid from address: %v", err)}
	}
	if err := m.To(strings.TrimSpace(n.Recipient.Email)); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("invalid recipient %q: %v", n.Recipient.Email, err)}
	}

	subject := n.Recipient.Meta(MetaSubject)
	if strings.TrimSpace(subject) == "" {
		subject = defaultSubject
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, n.Message)

	c, err := mail.NewClient(p.config.Host,
		mail.WithPort(p.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.config.Username),
		mail.WithPassword(p.config.Password),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(p.config.Encryption)),
	)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("creating mail client: %v", err)}
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Message: err.Error()}
	}
	return SuccessResult(n.ID, p.Name(), ChannelEmail), nil
}

// tlsPolicyFromEncryption converts the encryption string to a go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}
