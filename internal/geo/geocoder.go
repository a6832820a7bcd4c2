package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/adityanb2025/Disaster-relief-app/internal/config"
)

// Resolver converts free-text addresses to coordinates through a
// Nominatim-compatible search endpoint. One attempt per call, no retry;
// every failure mode collapses to "no coordinates" so a flaky geocoder
// can never fail a submission.
type Resolver struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		client:    &http.Client{Timeout: cfg.Geocoder.Timeout},
		baseURL:   strings.TrimRight(cfg.Geocoder.BaseURL, "/"),
		userAgent: cfg.Geocoder.UserAgent,
		logger:    logger,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (r *Resolver) Resolve(ctx context.Context, address string) (lat, lon float64, ok bool) {
	const op = "geo.Resolver.Resolve"

	address = strings.TrimSpace(address)
	if address == "" {
		return 0, 0, false
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		r.logger.Warn("geocode request build failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("geocode lookup failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("geocode non-200", slog.String("op", op), slog.Int("status", resp.StatusCode))
		return 0, 0, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		r.logger.Warn("geocode decode failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, false
	}
	if len(results) == 0 {
		r.logger.Debug("geocode no match", slog.String("op", op), slog.String("address", address))
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil ||
		lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		r.logger.Warn("geocode bad coordinates",
			slog.String("op", op), slog.String("lat", results[0].Lat), slog.String("lon", results[0].Lon))
		return 0, 0, false
	}

	return lat, lon, true
}
