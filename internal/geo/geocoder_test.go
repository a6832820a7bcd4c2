package geo

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/config"
)

func newTestResolver(t *testing.T, baseURL string) *Resolver {
	t.Helper()
	cfg := &config.Config{
		Geocoder: config.GeocoderConfig{
			BaseURL:   baseURL,
			UserAgent: "relief-hub-test",
			Timeout:   2 * time.Second,
		},
	}
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
	return NewResolver(cfg, logger)
}

func TestResolve_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "123 Main St" {
			t.Errorf("unexpected query %q", got)
		}
		if r.Header.Get("User-Agent") != "relief-hub-test" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"12.97","lon":"77.59","display_name":"123 Main St"}]`))
	}))
	defer srv.Close()

	r := newTestResolver(t, srv.URL)

	lat, lon, ok := r.Resolve(context.Background(), "123 Main St")
	if !ok {
		t.Fatalf("expected a match")
	}
	if lat != 12.97 || lon != 77.59 {
		t.Fatalf("got (%f, %f), want (12.97, 77.59)", lat, lon)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, _, ok := newTestResolver(t, srv.URL).Resolve(context.Background(), "nowhere at all"); ok {
		t.Fatalf("expected a miss on empty result")
	}
}

func TestResolve_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, _, ok := newTestResolver(t, srv.URL).Resolve(context.Background(), "123 Main St"); ok {
		t.Fatalf("expected a miss on HTTP 500")
	}
}

func TestResolve_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()

	if _, _, ok := newTestResolver(t, srv.URL).Resolve(context.Background(), "123 Main St"); ok {
		t.Fatalf("expected a miss on malformed JSON")
	}
}

func TestResolve_OutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"912.0","lon":"77.59"}]`))
	}))
	defer srv.Close()

	if _, _, ok := newTestResolver(t, srv.URL).Resolve(context.Background(), "123 Main St"); ok {
		t.Fatalf("expected a miss on out-of-range latitude")
	}
}

func TestResolve_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	if _, _, ok := newTestResolver(t, srv.URL).Resolve(context.Background(), "123 Main St"); ok {
		t.Fatalf("expected a miss when the geocoder is down")
	}
}

func TestResolve_EmptyAddress(t *testing.T) {
	t.Parallel()

	if _, _, ok := newTestResolver(t, "http://127.0.0.1:1").Resolve(context.Background(), "   "); ok {
		t.Fatalf("expected a miss on blank address")
	}
}
