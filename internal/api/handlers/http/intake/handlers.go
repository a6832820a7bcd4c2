package intake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type RequestSubmitter interface {
	Submit(ctx context.Context, req domain.SubmitRequestRequest) (domain.SubmitRequestResponse, error)
}

type Handler struct {
	logger    *slog.Logger
	Submitter RequestSubmitter
}

func NewHandler(logger *slog.Logger, submitter RequestSubmitter) *Handler {
	return &Handler{
		logger:    logger,
		Submitter: submitter,
	}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.SubmitRequestRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	// Reject trailing data after the first JSON object.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	l.Info("submitting help request",
		slog.String("need", string(req.Need)),
		slog.String("urgency", req.Urgency),
	)

	resp, err := h.Submitter.Submit(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("help request accepted",
		slog.String("id", resp.ID),
		slog.Bool("geocoded", resp.Geocoded),
	)
	h.writeJSON(w, http.StatusCreated, resp)
}
