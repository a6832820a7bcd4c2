package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"
	"github.com/adityanb2025/Disaster-relief-app/pkg/validator"
)

type statsService struct {
	store RequestStore
}

func NewStatsService(store RequestStore) StatsService {
	return &statsService{store: store}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReliefStats, error) {
	const op = "service.Stats.GetStats"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	requests, skipped, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	if req.Minutes > 0 {
		cutoff = time.Now().UTC().Add(-time.Duration(req.Minutes) * time.Minute)
	}

	stats := &domain.ReliefStats{
		ByStatus:    make(map[string]int),
		ByNeed:      make(map[string]int),
		SkippedRows: skipped,
	}
	responders := make(map[string]struct{})

	for _, r := range requests {
		if !cutoff.IsZero() && r.Timestamp.Before(cutoff) {
			continue
		}
		stats.Total++
		stats.ByStatus[string(r.Status)]++
		stats.ByNeed[string(r.Need)]++
		if r.Responder != "" {
			responders[r.Responder] = struct{}{}
		}
	}
	stats.ActiveVolunteers = len(responders)

	return stats, nil
}
