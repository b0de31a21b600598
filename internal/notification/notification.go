// Package notification contains the core domain model for routing
// notifications to channel-specific providers: the value objects, the
// per-channel validation rules, message template expansion, and the
// provider registry that dispatches sends.
package notification

import (
	"strings"

	"github.com/google/uuid"
)

// Priority indicates how urgent a notification is.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityNormal   Priority = "NORMAL"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ParsePriority converts a priority string (case-insensitive) to a Priority.
// Blank or unknown values fall back to PriorityNormal.
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PriorityLow):
		return PriorityLow
	case string(PriorityHigh):
		return PriorityHigh
	case string(PriorityCritical):
		return PriorityCritical
	default:
		return PriorityNormal
	}
}

// Well-known recipient metadata keys consumed by the channel validators
// and providers.
const (
	MetaDeviceToken    = "deviceToken"
	MetaSlackChannelID = "slackChannelId"
	MetaSubject        = "subject"
)

// Recipient identifies who a notification is addressed to. Which fields
// must be populated depends on the delivery channel and is enforced by
// Validate, not at construction time.
type Recipient struct {
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewRecipient builds a Recipient, copying metadata so later mutations by
// the caller cannot leak into an already submitted notification.
func NewRecipient(email, phone string, metadata map[string]string) *Recipient {
	r := &Recipient{Email: email, Phone: phone, Metadata: map[string]string{}}
	for k, v := range metadata {
		r.Metadata[k] = v
	}
	return r
}

// Meta returns the metadata value for key, or "" when absent.
func (r *Recipient) Meta(key string) string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}

// Notification is the unit of work submitted to the service. It is treated
// as immutable once constructed; the pipeline never modifies a notification
// in place (template expansion produces a copy via WithMessage).
type Notification struct {
	ID        string            `json:"id"`
	Recipient *Recipient        `json:"recipient"`
	Message   string            `json:"message"`
	Priority  Priority          `json:"priority"`
	Variables map[string]string `json:"variables,omitempty"`
}

// New builds a Notification, normalizing optional fields exactly once:
// a blank id gets a generated UUID, a blank priority defaults to NORMAL,
// and the variables map is copied. A nil map stays nil: "no variables
// supplied" is distinct from an empty map.
func New(id string, recipient *Recipient, message string, priority Priority, variables map[string]string) *Notification {
	if id == "" {
		id = uuid.New().String()
	}
	if priority == "" {
		priority = PriorityNormal
	}
	var vars map[string]string
	if variables != nil {
		vars = make(map[string]string, len(variables))
		for k, v := range variables {
			vars[k] = v
		}
	}
	return &Notification{
		ID:        id,
		Recipient: recipient,
		Message:   message,
		Priority:  priority,
		Variables: vars,
	}
}

// WithMessage returns a copy of the notification carrying a different
// message body. Used by the service after template expansion.
func (n *Notification) WithMessage(message string) *Notification {
	out := *n
	out.Message = message
	return &out
}
