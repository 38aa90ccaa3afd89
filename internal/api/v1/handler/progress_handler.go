package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"academy/internal/api/v1/dto"
	"academy/internal/middleware"
	"academy/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ProgressHandler handles section progress marks
type ProgressHandler struct {
	progressSvc service.ProgressService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService, validate *validator.Validate, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc, validate: validate, logger: logger}
}

// RegisterRoutes mounts progress routes
func (h *ProgressHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/weeks/", authMw(http.HandlerFunc(h.markSectionProgress)))
}

// markSectionProgress godoc
// @Summary Mark a section complete or incomplete
// @Tags progress
// @Accept json
// @Produce json
// @Param weekId path string true "Week ID"
// @Param sectionId path string true "Section ID"
// @Param progress body dto.SectionProgressRequestDTO true "Progress mark"
// @Success 200 {object} dto.SectionProgressResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to record section progress"
// @Router /weeks/{weekId}/sections/{sectionId}/progress [post]
func (h *ProgressHandler) markSectionProgress(w http.ResponseWriter, r *http.Request) {
	// Path shape: /weeks/{weekId}/sections/{sectionId}/progress
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/weeks/"), "/")
	if r.Method != http.MethodPost || len(parts) != 4 || parts[1] != "sections" || parts[3] != "progress" || parts[0] == "" || parts[2] == "" {
		http.NotFound(w, r)
		return
	}
	weekID, sectionID := parts[0], parts[2]

	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.SectionProgressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.progressSvc.MarkSectionProgress(r.Context(), userID, weekID, sectionID, *req.Completed); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Str("section_id", sectionID).
			Msg("Failed to record section progress")
		http.Error(w, "Failed to record section progress", http.StatusInternalServerError)
		return
	}

	resp := dto.SectionProgressResponseDTO{
		WeekID:    weekID,
		SectionID: sectionID,
		Completed: *req.Completed,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
