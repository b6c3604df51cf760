package pace

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler exposes the pace calculator endpoint.
type Handler struct {
	log *slog.Logger
}

// NewHandler returns a pace Handler logging through log.
func NewHandler(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

type response struct {
	Success bool `json:"success"`
	Result
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Calculate handles GET /api/pace?distance=10km&time=45:00.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	distance := r.URL.Query().Get("distance")
	duration := r.URL.Query().Get("time")
	if distance == "" || duration == "" {
		h.writeError(w, "distance and time query parameters are required")
		return
	}

	meters, err := ParseDistance(distance)
	if err != nil {
		h.writeError(w, err.Error())
		return
	}
	total, err := ParseDuration(duration)
	if err != nil {
		h.writeError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response{Success: true, Result: Calculate(meters, total)}); err != nil {
		h.log.Error("write response failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message}); err != nil {
		h.log.Error("write response failed", slog.String("error", err.Error()))
	}
}
