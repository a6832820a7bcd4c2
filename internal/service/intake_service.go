package service

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"
	"github.com/adityanb2025/Disaster-relief-app/pkg/validator"
)

type intakeService struct {
	store    RequestStore
	geocoder Geocoder
	cache    GeocodeCache
	logger   *slog.Logger
}

func NewIntakeService(store RequestStore, geocoder Geocoder, cache GeocodeCache, logger *slog.Logger) IntakeService {
	return &intakeService{
		store:    store,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
	}
}

// Submit validates the submission, resolves coordinates (manual entry
// wins over geocoding, a geocode miss is not fatal) and appends the
// record as pending. The stored record always honors the coordinate
// pairing invariant: both set or both absent.
func (s *intakeService) Submit(ctx context.Context, req domain.SubmitRequestRequest) (domain.SubmitRequestResponse, error) {
	const op = "service.Intake.Submit"

	if err := validator.ValidateStruct(req); err != nil {
		s.logger.Warn("submission rejected", slog.String("op", op), slog.Any("error", err))
		return domain.SubmitRequestResponse{}, fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return domain.SubmitRequestResponse{}, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	address := strings.TrimSpace(req.Address)

	var lat, lon *float64
	switch {
	case req.Lat != nil:
		lat, lon = req.Lat, req.Lon
	case address != "":
		if la, lo, ok := s.lookup(ctx, address); ok {
			lat, lon = &la, &lo
		}
	}

	record := &domain.Request{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: address,
		Need:    req.Need,
		Urgency: req.Urgency,
		Extra:   strings.TrimSpace(req.Extra),
		Lat:     lat,
		Lon:     lon,
	}
	if record.Address == "" && record.HasCoordinates() {
		record.Address = fmt.Sprintf("%g, %g", *lat, *lon)
	}

	if err := s.store.Append(ctx, record); err != nil {
		s.logger.Error("append failed", slog.String("op", op), slog.Any("error", err))
		return domain.SubmitRequestResponse{}, err
	}

	s.logger.Info("request submitted",
		slog.String("id", record.ID.String()),
		slog.String("need", string(record.Need)),
		slog.Bool("geocoded", record.HasCoordinates()),
	)

	return domain.SubmitRequestResponse{
		ID:       record.ID.String(),
		Status:   record.Status,
		Geocoded: record.HasCoordinates(),
	}, nil
}

// lookup tries the cache before the live geocoder. Cache failures are
// invisible to the caller.
func (s *intakeService) lookup(ctx context.Context, address string) (float64, float64, bool) {
	if s.cache != nil {
		if lat, lon, ok := s.cache.Get(ctx, address); ok {
			return lat, lon, true
		}
	}

	lat, lon, ok := s.geocoder.Resolve(ctx, address)
	if !ok {
		return 0, 0, false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, address, lat, lon); err != nil {
			s.logger.Warn("geocode cache set failed", slog.Any("error", err))
		}
	}
	return lat, lon, true
}
