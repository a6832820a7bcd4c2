package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/internal/service"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"

	mock_service "github.com/adityanb2025/Disaster-relief-app/internal/service/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func f64ptr(v float64) *float64 { return &v }

func validSubmission() domain.SubmitRequestRequest {
	return domain.SubmitRequestRequest{
		Name:    "A",
		Phone:   "+11234567890",
		Address: "123 Main St",
		Need:    domain.NeedWater,
		Urgency: "High - Life threatening",
	}
}

func TestIntakeSubmit_GeocodeOK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)

	geocoder.EXPECT().
		Resolve(gomock.Any(), "123 Main St").
		Return(12.97, 77.59, true).
		Times(1)

	var got *domain.Request
	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			got = req
			// the real backends assign system fields via PrepareForAppend
			return req.PrepareForAppend()
		}).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

	resp, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !resp.Geocoded {
		t.Fatalf("expected geocoded response")
	}
	if resp.Status != domain.StatusPending {
		t.Fatalf("status = %s, want pending", resp.Status)
	}

	if got == nil {
		t.Fatalf("nothing appended")
	}
	if !got.HasCoordinates() || *got.Lat != 12.97 || *got.Lon != 77.59 {
		t.Fatalf("coordinates not stored: %+v", got)
	}
	if got.Name != "A" || got.Need != domain.NeedWater {
		t.Fatalf("fields mangled: %+v", got)
	}
}

func TestIntakeSubmit_GeocodeMiss_PersistsWithoutCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)

	geocoder.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(0.0, 0.0, false).
		Times(1)

	var got *domain.Request
	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			got = req
			return req.PrepareForAppend()
		}).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

	resp, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("a geocode miss must not fail the submission: %v", err)
	}
	if resp.Geocoded {
		t.Fatalf("response claims geocoded on a miss")
	}
	if got.Lat != nil || got.Lon != nil {
		t.Fatalf("partial coordinates persisted: %+v", got)
	}
}

func TestIntakeSubmit_ManualCoordinatesSkipGeocoder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)
	// no Resolve expectation: calling it fails the test

	var got *domain.Request
	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			got = req
			return req.PrepareForAppend()
		}).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

	req := validSubmission()
	req.Lat = f64ptr(28.61)
	req.Lon = f64ptr(77.21)

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if *got.Lat != 28.61 || *got.Lon != 77.21 {
		t.Fatalf("manual coordinates not honored: %+v", got)
	}
}

func TestIntakeSubmit_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*domain.SubmitRequestRequest)
	}{
		{"empty name", func(r *domain.SubmitRequestRequest) { r.Name = "" }},
		{"short phone", func(r *domain.SubmitRequestRequest) { r.Phone = "12345" }},
		{"bad need", func(r *domain.SubmitRequestRequest) { r.Need = "Teleportation" }},
		{"empty urgency", func(r *domain.SubmitRequestRequest) { r.Urgency = "" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mock_service.NewMockRequestStore(ctrl)
			geocoder := mock_service.NewMockGeocoder(ctrl)
			// neither the geocoder nor the store may be touched

			svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

			req := validSubmission()
			tc.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			if !errors.Is(err, e.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestIntakeSubmit_UnpairedManualCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)

	svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

	req := validSubmission()
	req.Lat = f64ptr(28.61) // lon missing

	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("err = %v, want ErrInvalidCoordinates", err)
	}
}

func TestIntakeSubmit_CacheHitSkipsGeocoder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)
	cache := mock_service.NewMockGeocodeCache(ctrl)

	cache.EXPECT().
		Get(gomock.Any(), "123 Main St").
		Return(12.97, 77.59, true).
		Times(1)

	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			return req.PrepareForAppend()
		}).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, cache, newTestLogger())

	resp, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !resp.Geocoded {
		t.Fatalf("expected geocoded from cache")
	}
}

func TestIntakeSubmit_CacheMissFillsCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)
	cache := mock_service.NewMockGeocodeCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "123 Main St").Return(0.0, 0.0, false).Times(1)
	geocoder.EXPECT().Resolve(gomock.Any(), "123 Main St").Return(12.97, 77.59, true).Times(1)
	cache.EXPECT().Set(gomock.Any(), "123 Main St", 12.97, 77.59).Return(nil).Times(1)
	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) error {
			return req.PrepareForAppend()
		}).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, cache, newTestLogger())

	if _, err := svc.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestIntakeSubmit_StoreFailureSurfaces(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockRequestStore(ctrl)
	geocoder := mock_service.NewMockGeocoder(ctrl)

	geocoder.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(12.97, 77.59, true).Times(1)
	store.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(e.ErrStorage).
		Times(1)

	svc := service.NewIntakeService(store, geocoder, nil, newTestLogger())

	_, err := svc.Submit(context.Background(), validSubmission())
	if !errors.Is(err, e.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
}
