// Package service orchestrates the notification pipeline: validation,
// template expansion, provider dispatch, and delivery logging.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shaharia-lab/courier/internal/metrics"
	"github.com/shaharia-lab/courier/internal/notification"
	"github.com/shaharia-lab/courier/internal/storage"
)

// Service is the public entry point for sending notifications. It holds no
// mutable state across calls; each send is independent.
type Service struct {
	registry *notification.Registry
	tmpl     *notification.TemplateEngine
	store    storage.DeliveryStore
	metrics  *metrics.Metrics
	logger   *slog.Logger

	jobs    chan asyncJob
	workers int
	wg      sync.WaitGroup
}

// New creates a Service and starts its asynchronous worker pool. metrics
// may be nil to disable instrumentation. Call Close to drain the pool.
func New(registry *notification.Registry, store storage.DeliveryStore, m *metrics.Metrics, logger *slog.Logger, workers, queueSize int) *Service {
	if workers <= 0 {
		workers = defaultAsyncWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultAsyncQueueSize
	}
	s := &Service{
		registry: registry,
		tmpl:     notification.NewTemplateEngine(logger),
		store:    store,
		metrics:  m,
		logger:   logger,
		jobs:     make(chan asyncJob, queueSize),
		workers:  workers,
	}
	s.startWorkers()
	return s
}

// Send validates the notification against the given channel, expands its
// message template, and dispatches it to the matching provider. The call
// runs entirely on the caller's goroutine.
func (s *Service) Send(ctx context.Context, n *notification.Notification, channel notification.Channel) (*notification.Result, error) {
	start := time.Now()

	if n == nil {
		return nil, &notification.InvalidArgumentError{Name: "notification"}
	}
	s.logger.Debug("processing notification",
		slog.String("notification_id", n.ID),
		slog.String("channel", string(channel)),
		slog.String("priority", string(n.Priority)))

	if err := notification.Validate(n, channel); err != nil {
		s.logger.Error("notification rejected",
			slog.String("notification_id", n.ID),
			slog.String("channel", string(channel)),
			slog.String("error", err.Error()))
		s.observe(channel, "rejected", start)
		return nil, err
	}

	outgoing := s.expandMessage(n)

	s.logger.Info("dispatching notification",
		slog.String("notification_id", outgoing.ID),
		slog.String("channel", string(channel)))

	res, err := s.registry.Dispatch(ctx, outgoing, channel)
	if err != nil {
		s.logger.Error("provider failed",
			slog.String("notification_id", outgoing.ID),
			slog.String("channel", string(channel)),
			slog.String("error", err.Error()))
		s.recordDelivery(outgoing, channel, providerNameFromError(err), err)
		s.observe(channel, storage.StatusFailed, start)
		return nil, err
	}

	s.recordDelivery(outgoing, channel, res.Provider, nil)
	s.observe(channel, storage.StatusSent, start)
	return res, nil
}

// SendAuto infers the channel from the recipient's contact data (email,
// then phone, then deviceToken metadata, then slackChannelId metadata)
// and sends over it. A recipient with none of these yields a
// ValidationError.
func (s *Service) SendAuto(ctx context.Context, n *notification.Notification) (*notification.Result, error) {
	if n == nil {
		return nil, &notification.InvalidArgumentError{Name: "notification"}
	}
	channel, err := InferChannel(n.Recipient)
	if err != nil {
		s.logger.Error("cannot infer channel",
			slog.String("notification_id", n.ID))
		return nil, err
	}
	return s.Send(ctx, n, channel)
}

// ListDeliveries returns the most recent delivery log entries.
func (s *Service) ListDeliveries(ctx context.Context, limit int) ([]storage.DeliveryLogEntry, error) {
	return s.store.ListDeliveries(ctx, limit)
}

// Providers returns the registered providers and their channels.
func (s *Service) Providers() []notification.ProviderInfo {
	return s.registry.Providers()
}

// InferChannel picks a delivery channel from the recipient's populated
// contact fields, in priority order. Returns a ValidationError when no
// contact channel is present.
func InferChannel(r *notification.Recipient) (notification.Channel, error) {
	if r != nil {
		switch {
		case strings.TrimSpace(r.Email) != "":
			return notification.ChannelEmail, nil
		case strings.TrimSpace(r.Phone) != "":
			return notification.ChannelSMS, nil
		case strings.TrimSpace(r.Meta(notification.MetaDeviceToken)) != "":
			return notification.ChannelPush, nil
		case strings.TrimSpace(r.Meta(notification.MetaSlackChannelID)) != "":
			return notification.ChannelSlack, nil
		}
	}
	return "", &notification.ValidationError{
		Field:   "channel",
		Message: "cannot infer channel from recipient contact data",
	}
}

// expandMessage returns the notification with its message template
// expanded, or the notification itself when there is nothing to expand.
// The original notification is never modified.
func (s *Service) expandMessage(n *notification.Notification) *notification.Notification {
	if n.Variables == nil || !notification.HasVariables(n.Message) {
		return n
	}
	return n.WithMessage(s.tmpl.Expand(n.Message, n.Variables))
}

// recordDelivery writes the dispatch outcome to the delivery log. Logging
// failures are reported but never affect the send result.
func (s *Service) recordDelivery(n *notification.Notification, channel notification.Channel, provider string, sendErr error) {
	entry := storage.DeliveryLogEntry{
		NotificationID: n.ID,
		Channel:        string(channel),
		Provider:       provider,
		Status:         storage.StatusSent,
		CreatedAt:      time.Now().UTC(),
	}
	if sendErr != nil {
		entry.Status = storage.StatusFailed
		entry.ErrorMsg = sendErr.Error()
	}
	if err := s.store.LogDelivery(context.Background(), entry); err != nil {
		s.logger.Error("failed to record delivery",
			slog.String("notification_id", n.ID),
			slog.String("error", err.Error()))
	}
}

// providerNameFromError extracts the provider name from a ProviderError,
// including the "none" sentinel when no provider was registered for the
// channel.
func providerNameFromError(err error) string {
	var perr *notification.ProviderError
	if errors.As(err, &perr) {
		return perr.Provider
	}
	return ""
}

// observe records pipeline metrics when instrumentation is enabled.
func (s *Service) observe(channel notification.Channel, status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSend(string(channel), status, time.Since(start))
}
