// Package storage persists the delivery audit log. The notification core
// never reads it back; it is a write-behind record of send outcomes.
package storage

import (
	"context"
	"time"
)

// Delivery statuses recorded in the log.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// DeliveryLogEntry records a single delivery attempt and its outcome.
type DeliveryLogEntry struct {
	ID             int64     `json:"id"`
	NotificationID string    `json:"notification_id"`
	Channel        string    `json:"channel"`
	Provider       string    `json:"provider"`
	Status         string    `json:"status"`
	ErrorMsg       string    `json:"error_msg"`
	CreatedAt      time.Time `json:"created_at"`
}

// DeliveryStore defines the interface for persisting delivery outcomes.
type DeliveryStore interface {
	// LogDelivery records a delivery attempt.
	LogDelivery(ctx context.Context, entry DeliveryLogEntry) error
	// ListDeliveries returns the most recent delivery log entries, up to limit.
	ListDeliveries(ctx context.Context, limit int) ([]DeliveryLogEntry, error)
}
