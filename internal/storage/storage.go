package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/config"
	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/internal/storage/file"
	"github.com/adityanb2025/Disaster-relief-app/internal/storage/sheets"

	"github.com/google/uuid"
)

// RequestStore is the one contract both backends satisfy. Append and
// UpdateStatus are durable before they return; ReadAll reports how many
// malformed rows it skipped instead of failing on them.
//
// Failure modes are distinguishable through pkg/e sentinels:
// e.ErrNotFound (no such id), e.ErrIllegalTransition (backward move),
// e.ErrInvalidInput (invariant violation), e.ErrStorage (backend
// unreachable or write rejected).
type RequestStore interface {
	Append(ctx context.Context, req *domain.Request) error
	ReadAll(ctx context.Context) ([]*domain.Request, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, responder string) error
	// Backend names the implementation for health reporting.
	Backend() string
}

// Select picks the backend once at startup: Google Sheets when
// credentials are configured and the client comes up, the local CSV
// file otherwise. Nothing outside this function branches on backend
// identity.
func Select(ctx context.Context, cfg *config.Config, logger *slog.Logger) (RequestStore, error) {
	if cfg.Sheets.Configured() {
		logger.Info("Selecting Google Sheets backend",
			slog.String("spreadsheet_id", cfg.Sheets.SpreadsheetID),
			slog.String("tab", cfg.Sheets.Tab))
		store, err := sheets.New(ctx, cfg, logger)
		if err == nil {
			return store, nil
		}
		// Credentials were configured but the remote store is not
		// reachable; degrade to the local file so the system stays
		// usable offline.
		logger.Warn("Sheets backend unavailable, falling back to CSV file",
			slog.Any("error", err))
	} else {
		logger.Info("Sheets credentials absent, selecting CSV file backend",
			slog.String("path", cfg.File.Path))
	}
	store, err := file.New(cfg.File.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("init file backend: %w", err)
	}
	return store, nil
}
