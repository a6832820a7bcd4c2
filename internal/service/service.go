package service

import (
	"context"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// RequestStore is whichever backend the selector picked; the services
// never learn which one.
type RequestStore interface {
	Append(ctx context.Context, req *domain.Request) error
	ReadAll(ctx context.Context) ([]*domain.Request, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, responder string) error
}

type Geocoder interface {
	Resolve(ctx context.Context, address string) (lat, lon float64, ok bool)
}

// GeocodeCache fronts the geocoder; a nil cache means lookups always go
// live.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (lat, lon float64, ok bool)
	Set(ctx context.Context, address string, lat, lon float64) error
}

// Victim-facing use-cases.
type IntakeService interface {
	Submit(ctx context.Context, req domain.SubmitRequestRequest) (domain.SubmitRequestResponse, error)
}

// Volunteer-facing use-cases.
type DispatchService interface {
	List(ctx context.Context) (domain.ListRequestsResponse, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) (domain.ListRequestsResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateStatusRequest) error
	Nearby(ctx context.Context, req domain.NearbyRequest) (domain.NearbyResponse, error)
}

// Coordinator dashboards.
type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReliefStats, error)
}

type Service struct {
	IntakeService   IntakeService
	DispatchService DispatchService
	StatsService    StatsService
}

func NewService(
	intakeService IntakeService,
	dispatchService DispatchService,
	statsService StatsService,
) *Service {
	return &Service{
		IntakeService:   intakeService,
		DispatchService: dispatchService,
		StatsService:    statsService,
	}
}
