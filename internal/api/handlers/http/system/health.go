package system

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

// Handler serves liveness probes. The response names the storage
// backend selected at startup so an operator can tell at a glance
// whether the service is on the remote sheet or the local fallback.
type Handler struct {
	logger  *slog.Logger
	backend string
}

func NewHandler(logger *slog.Logger, backend string) *Handler {
	return &Handler{logger: logger, backend: backend}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"backend": h.backend,
	}); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
