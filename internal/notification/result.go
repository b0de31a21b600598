package notification

import "time"

// Result records the outcome of a single send. Results are constructed
// only through SuccessResult and FailureResult.
type Result struct {
	NotificationID string    `json:"notification_id"`
	Success        bool      `json:"success"`
	Provider       string    `json:"provider"`
	Channel        Channel   `json:"channel"`
	Timestamp      time.Time `json:"timestamp"`
	Error          string    `json:"error,omitempty"`
}

// SuccessResult builds a successful Result for the given notification.
func SuccessResult(notificationID, provider string, channel Channel) *Result {
	return &Result{
		NotificationID: notificationID,
		Success:        true,
		Provider:       provider,
		Channel:        channel,
		Timestamp:      time.Now().UTC(),
	}
}

// FailureResult builds a failed Result carrying the provider's error message.
func FailureResult(notificationID, provider string, channel Channel, errMsg string) *Result {
	return &Result{
		NotificationID: notificationID,
		Success:        false,
		Provider:       provider,
		Channel:        channel,
		Timestamp:      time.Now().UTC(),
		Error:          errMsg,
	}
}
