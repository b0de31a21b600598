package notification

import "fmt"

// ProviderNone is the sentinel provider name carried by a ProviderError
// when no provider was available to handle the request.
const ProviderNone = "none"

// InvalidArgumentError is returned when a required input (notification,
// channel) is absent or unrecognized. Always a caller bug.
type InvalidArgumentError struct {
	Name string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("required argument %q is missing or invalid", e.Name)
}

// ValidationError is returned when a notification's content does not
// satisfy the preconditions of the requested channel. It is surfaced
// before any provider is invoked and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// ProviderError is returned when the selected provider could not process
// the notification, including the "no provider registered" case where
// Provider is the ProviderNone sentinel.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %q: %s", e.Provider, e.Message)
}
