package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Dispatcher interface {
	List(ctx context.Context) (domain.ListRequestsResponse, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) (domain.ListRequestsResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateStatusRequest) error
	Nearby(ctx context.Context, req domain.NearbyRequest) (domain.NearbyResponse, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReliefStats, error)
}

type Handler struct {
	logger     *slog.Logger
	Dispatcher Dispatcher
	Stats      StatsGetter
}

func NewHandler(logger *slog.Logger, dispatcher Dispatcher, stats StatsGetter) *Handler {
	return &Handler{
		logger:     logger,
		Dispatcher: dispatcher,
		Stats:      stats,
	}
}

func (h *Handler) RequestList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("RequestList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	var (
		resp domain.ListRequestsResponse
		err  error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		resp, err = h.Dispatcher.ListByStatus(r.Context(), domain.RequestStatus(status))
	} else {
		resp, err = h.Dispatcher.List(r.Context())
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("requests listed", slog.Int("count", resp.Total), slog.Int("skipped", resp.Skipped))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RequestNearby(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("RequestNearby", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		l.Warn("invalid coordinates", slog.String("lat", q.Get("lat")), slog.String("lng", q.Get("lng")))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required numbers"})
		return
	}
	radius := 10.0
	if v := q.Get("radius_km"); v != "" {
		var err error
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			l.Warn("invalid radius", slog.String("radius_km", v))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_km must be a number"})
			return
		}
	}

	resp, err := h.Dispatcher.Nearby(r.Context(), domain.NearbyRequest{
		Lat:      lat,
		Lng:      lng,
		RadiusKM: radius,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RequestStatusUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("RequestStatusUpdate", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.Dispatcher.UpdateStatus(r.Context(), id, req); err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("status updated", slog.String("id", id.String()), slog.String("status", string(req.Status)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	minutes := 0
	if v := r.URL.Query().Get("minutes"); v != "" {
		var err error
		minutes, err = strconv.Atoi(v)
		if err != nil {
			l.Warn("invalid minutes", slog.String("minutes", v))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be an integer"})
			return
		}
	}
	if minutes < 0 || minutes > 10080 {
		l.Warn("invalid minutes", slog.Int("minutes", minutes))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be 0-10080"})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), domain.StatsRequest{Minutes: minutes})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}
