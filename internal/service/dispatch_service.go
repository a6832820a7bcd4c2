package service

import (
	"context"
	"fmt"
	"sort"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/internal/geo"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"
	"github.com/adityanb2025/Disaster-relief-app/pkg/validator"

	"github.com/google/uuid"
)

type dispatchService struct {
	store  RequestStore
	logger *slog.Logger
}

func NewDispatchService(store RequestStore, logger *slog.Logger) DispatchService {
	return &dispatchService{store: store, logger: logger}
}

func (s *dispatchService) List(ctx context.Context) (domain.ListRequestsResponse, error) {
	requests, skipped, err := s.store.ReadAll(ctx)
	if err != nil {
		return domain.ListRequestsResponse{}, err
	}
	if skipped > 0 {
		s.logger.Warn("malformed rows skipped on read", slog.Int("skipped", skipped))
	}
	return domain.ListRequestsResponse{
		Requests: requests,
		Total:    len(requests),
		Skipped:  skipped,
	}, nil
}

// ListByStatus is a filter over the same read path, not a separate
// backend index.
func (s *dispatchService) ListByStatus(ctx context.Context, status domain.RequestStatus) (domain.ListRequestsResponse, error) {
	const op = "service.Dispatch.ListByStatus"

	if !status.Valid() {
		return domain.ListRequestsResponse{}, fmt.Errorf("%s: status %q: %w", op, status, e.ErrInvalidInput)
	}

	all, err := s.List(ctx)
	if err != nil {
		return domain.ListRequestsResponse{}, err
	}

	filtered := make([]*domain.Request, 0, len(all.Requests))
	for _, req := range all.Requests {
		if req.Status == status {
			filtered = append(filtered, req)
		}
	}
	return domain.ListRequestsResponse{
		Requests: filtered,
		Total:    len(filtered),
		Skipped:  all.Skipped,
	}, nil
}

func (s *dispatchService) UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateStatusRequest) error {
	const op = "service.Dispatch.UpdateStatus"

	if err := validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	if err := s.store.UpdateStatus(ctx, id, req.Status, req.Responder); err != nil {
		s.logger.Warn("status update failed",
			slog.String("op", op),
			slog.String("id", id.String()),
			slog.String("status", string(req.Status)),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.Info("status updated",
		slog.String("id", id.String()),
		slog.String("status", string(req.Status)),
		slog.String("responder", req.Responder),
	)
	return nil
}

// Nearby returns pending requests within radius_km of the volunteer's
// position, closest first. Requests without coordinates cannot be
// ranked and are left out.
func (s *dispatchService) Nearby(ctx context.Context, req domain.NearbyRequest) (domain.NearbyResponse, error) {
	const op = "service.Dispatch.Nearby"

	if err := validator.ValidateStruct(req); err != nil {
		return domain.NearbyResponse{}, fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidCoordinates)
	}

	pending, err := s.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return domain.NearbyResponse{}, err
	}

	items := make([]domain.NearbyItem, 0, len(pending.Requests))
	for _, r := range pending.Requests {
		if !r.HasCoordinates() {
			continue
		}
		dist := geo.Distance(req.Lat, req.Lng, *r.Lat, *r.Lon)
		if dist <= req.RadiusKM {
			items = append(items, domain.NearbyItem{Request: r, DistanceKM: dist})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DistanceKM < items[j].DistanceKM
	})

	return domain.NearbyResponse{Requests: items}, nil
}
