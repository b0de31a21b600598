package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shaharia-lab/courier/internal/notification"
)

// sendNotificationRequest is the JSON payload for the send endpoints.
// Channel is optional; when blank it is inferred from the recipient's
// contact data.
type sendNotificationRequest struct {
	ID        string            `json:"id"`
	Channel   string            `json:"channel"`
	Message   string            `json:"message"`
	Priority  string            `json:"priority"`
	Recipient *recipientPayload `json:"recipient"`
	Variables map[string]string `json:"variables"`
}

type recipientPayload struct {
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Metadata map[string]string `json:"metadata"`
}

// toNotification builds the domain notification from the request payload.
func (req *sendNotificationRequest) toNotification() *notification.Notification {
	var rcpt *notification.Recipient
	if req.Recipient != nil {
		rcpt = notification.NewRecipient(req.Recipient.Email, req.Recipient.Phone, req.Recipient.Metadata)
	}
	return notification.New(req.ID, rcpt, req.Message, notification.ParsePriority(req.Priority), req.Variables)
}

// resolveChannel parses the explicit channel. A blank channel returns ""
// and means "let the service infer one from the recipient".
func resolveChannel(req *sendNotificationRequest) (notification.Channel, error) {
	if req.Channel == "" {
		return "", nil
	}
	return notification.ParseChannel(req.Channel)
}

// statusFromError maps the error taxonomy to HTTP status codes:
// caller bugs are 400, content failures 422, provider failures 502.
func statusFromError(err error) int {
	var invalid *notification.InvalidArgumentError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var verr *notification.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	var perr *notification.ProviderError
	if errors.As(err, &perr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// handleSendNotification performs a synchronous send and returns the
// provider's result.
func (s *Server) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	n := req.toNotification()
	channel, err := resolveChannel(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var res *notification.Result
	if channel == "" {
		res, err = s.svc.SendAuto(r.Context(), n)
	} else {
		res, err = s.svc.Send(r.Context(), n, channel)
	}
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSendNotificationAsync queues the send on the worker pool and
// returns 202 immediately with the notification id for correlation with
// the delivery log.
func (s *Server) handleSendNotificationAsync(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	n := req.toNotification()
	channel, err := resolveChannel(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The request context dies when this handler returns; queued work must
	// not be canceled by it.
	ctx := context.WithoutCancel(r.Context())
	if channel == "" {
		s.svc.SendAutoAsync(ctx, n)
	} else {
		s.svc.SendAsync(ctx, n, channel)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"notification_id": n.ID,
		"status":          "queued",
	})
}

// handleListDeliveries returns recent delivery log entries.
// Accepts an optional ?limit=N query parameter (default 50).
func (s *Server) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.svc.ListDeliveries(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deliveries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleListProviders returns the registered providers and their channels.
func (s *Server) handleListProviders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Providers())
}
