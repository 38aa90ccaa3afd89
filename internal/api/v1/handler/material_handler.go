package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"academy/internal/api/v1/dto"
	"academy/internal/middleware"
	"academy/internal/service"

	"github.com/rs/zerolog"
)

// MaterialHandler serves signed download URLs for course materials
type MaterialHandler struct {
	materialSvc service.MaterialService
	logger      zerolog.Logger
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materialSvc service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{materialSvc: materialSvc, logger: logger}
}

// RegisterRoutes mounts material routes
func (h *MaterialHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/materials/", authMw(http.HandlerFunc(h.getDownloadURL)))
}

// getDownloadURL godoc
// @Summary Get a download URL for a course material
// @Description Returns a short-lived signed URL when the material's course is open to the caller.
// @Tags materials
// @Produce json
// @Param materialId path string true "Material ID"
// @Success 200 {object} dto.MaterialDownloadResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 403 {string} string "Course is locked"
// @Failure 404 {string} string "Material not found"
// @Router /materials/{materialId}/download-url [get]
func (h *MaterialHandler) getDownloadURL(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/materials/")
	if r.Method != http.MethodGet || !strings.HasSuffix(rest, "/download-url") {
		http.NotFound(w, r)
		return
	}
	materialID := strings.TrimSuffix(rest, "/download-url")
	if materialID == "" || strings.Contains(materialID, "/") {
		http.NotFound(w, r)
		return
	}

	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	url, err := h.materialSvc.GetDownloadURL(r.Context(), userID, materialID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaterialNotFound):
			http.Error(w, "Material not found", http.StatusNotFound)
		case errors.Is(err, service.ErrMaterialLocked):
			http.Error(w, "Course is locked", http.StatusForbidden)
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Str("material_id", materialID).Msg("Failed to generate download URL")
			http.Error(w, "Failed to generate download URL", http.StatusInternalServerError)
		}
		return
	}

	resp := dto.MaterialDownloadResponseDTO{MaterialID: materialID, DownloadURL: url}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
