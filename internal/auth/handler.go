package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Refresh exchanges a valid canvas token for a fresh one. It must run
// behind CanvasMiddleware.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	canvasID := CanvasIDFromContext(r.Context())
	result, err := h.service.IssueToken(canvasID)
	if err != nil {
		slog.Error("refresh failed", "canvas", canvasID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
