package intake_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"github.com/adityanb2025/Disaster-relief-app/internal/api/handlers/http/intake"
	mock_intake "github.com/adityanb2025/Disaster-relief-app/internal/api/handlers/http/intake/mocks"
	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestSubmitRequest_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_intake.NewMockRequestSubmitter(ctrl)
	h := intake.NewHandler(newTestLogger(), svc)

	reqBody := `{"name":"Asha","phone":"+919812345678","address":"12 MG Road, Bengaluru","need":"Water","urgency":"High"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantReq := domain.SubmitRequestRequest{
		Name:    "Asha",
		Phone:   "+919812345678",
		Address: "12 MG Road, Bengaluru",
		Need:    domain.NeedWater,
		Urgency: "High",
	}
	wantResp := domain.SubmitRequestResponse{
		ID:       "11111111-1111-1111-1111-111111111111",
		Status:   domain.StatusPending,
		Geocoded: true,
	}

	svc.EXPECT().
		Submit(gomock.Any(), wantReq).
		Return(wantResp, nil).
		Times(1)

	h.SubmitRequest(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.SubmitRequestResponse](t, rr)
	if !reflect.DeepEqual(got, wantResp) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, wantResp)
	}
}

func TestSubmitRequest_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_intake.NewMockRequestSubmitter(ctrl)
	h := intake.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.SubmitRequest(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestSubmitRequest_EmptyBody_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_intake.NewMockRequestSubmitter(ctrl)
	h := intake.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", nil)
	rr := httptest.NewRecorder()

	h.SubmitRequest(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestSubmitRequest_UnknownField_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_intake.NewMockRequestSubmitter(ctrl)
	h := intake.NewHandler(newTestLogger(), svc)

	reqBody := `{"name":"Asha","phone":"+919812345678","address":"12 MG Road","need":"Water","urgency":"High","foo":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	h.SubmitRequest(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestSubmitRequest_TrailingData_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_intake.NewMockRequestSubmitter(ctrl)
	h := intake.NewHandler(newTestLogger(), svc)

	reqBody := `{"name":"Asha","phone":"+919812345678","address":"12 MG Road","need":"Water","urgency":"High"}{"x":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	h.SubmitRequest(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestSubmitRequest_ServiceErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid input", fmt.Errorf("service: %w", e.ErrInvalidInput), http.StatusBadRequest},
		{"invalid coordinates", fmt.Errorf("service: %w", e.ErrInvalidCoordinates), http.StatusBadRequest},
		{"storage down", fmt.Errorf("service: %w", e.ErrStorage), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock_intake.NewMockRequestSubmitter(ctrl)
			h := intake.NewHandler(newTestLogger(), svc)

			reqBody := `{"name":"Asha","phone":"+919812345678","address":"12 MG Road","need":"Water","urgency":"High"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewBufferString(reqBody))
			rr := httptest.NewRecorder()

			svc.EXPECT().
				Submit(gomock.Any(), gomock.Any()).
				Return(domain.SubmitRequestResponse{}, tc.err).
				Times(1)

			h.SubmitRequest(rr, req)

			if rr.Code != tc.wantCode {
				t.Fatalf("expected %d got %d body=%s", tc.wantCode, rr.Code, rr.Body.String())
			}
		})
	}
}
