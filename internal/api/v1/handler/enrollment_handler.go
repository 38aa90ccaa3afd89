package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"academy/internal/api/v1/dto"
	"academy/internal/service"

	"github.com/rs/zerolog"
)

// EnrollmentHandler receives enrollment events on Pub/Sub push endpoints.
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
	dlqSvc        service.DLQService
	logger        zerolog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService, dlqSvc service.DLQService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc, dlqSvc: dlqSvc, logger: logger}
}

// RegisterRoutes mounts the push endpoints behind the Pub/Sub auth middleware.
func (h *EnrollmentHandler) RegisterRoutes(mux *http.ServeMux, pubsubAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/pubsub/enrollment", pubsubAuthMw(http.HandlerFunc(h.applyEnrollment)))
	mux.Handle("/pubsub/enrollment/dlq", pubsubAuthMw(http.HandlerFunc(h.recordDeadLetter)))
}

func (h *EnrollmentHandler) applyEnrollment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.PubSubPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid push payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message.MessageID == "" {
		http.Error(w, "Invalid Pub/Sub message format: missing message ID", http.StatusBadRequest)
		return
	}

	if err := h.enrollmentSvc.ApplyPushedEvent(r.Context(), &req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The user may not be provisioned yet; a non-2xx makes Pub/Sub
			// redeliver until the record exists or the DLQ takes over.
			h.logger.Warn().Err(err).Str("message_id", req.Message.MessageID).
				Msg("Enrollment event for unknown user, requesting redelivery")
			http.Error(w, "User not found", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Str("message_id", req.Message.MessageID).
			Msg("Failed to apply enrollment event")
		http.Error(w, "Failed to apply enrollment event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EnrollmentHandler) recordDeadLetter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.PubSubPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid push payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message.MessageID == "" {
		http.Error(w, "Invalid Pub/Sub message format: missing message ID", http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("message_id", req.Message.MessageID).
		Str("subscription", req.Subscription).
		Msg("Processing dead-letter enrollment message")

	if err := h.dlqSvc.ProcessAndSave(r.Context(), &req); err != nil {
		// Still return 204 to Pub/Sub to prevent retries of a message that
		// is already dead-lettered; the failure is logged for offline review.
		h.logger.Error().Err(err).Str("message_id", req.Message.MessageID).
			Msg("Failed to save dead-letter message")
	}
	w.WriteHeader(http.StatusNoContent)
}
