package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adityanb2025/Disaster-relief-app/internal/config"
	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Store is the remote tabular backend: one Google Sheets tab holding
// all request rows, header in row 1. Appends are row-level and updates
// touch only the two mutable cells of the matched row, so concurrent
// writers on different records do not interfere. Two writers on the
// same record race cell-wise with last-write-wins (known limitation).
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	const op = "sheets.New"

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.Sheets.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		logger.Error("sheets client init failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	s := &Store{
		svc:           svc,
		spreadsheetID: cfg.Sheets.SpreadsheetID,
		tab:           cfg.Sheets.Tab,
		logger:        logger,
	}

	// Doubles as the startup ping.
	if err := s.ensureHeader(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	logger.Info("connected to spreadsheet",
		slog.String("spreadsheet_id", s.spreadsheetID), slog.String("tab", s.tab))

	return s, nil
}

func (s *Store) ensureHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:%s1", s.tab, lastColumn())

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(domain.RowHeader))
	for i, h := range domain.RowHeader {
		header[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng,
		&sheetsapi.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (s *Store) Backend() string { return "sheets" }

func (s *Store) Append(ctx context.Context, req *domain.Request) error {
	const op = "sheets.Store.Append"

	if err := req.PrepareForAppend(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	row := req.Row()
	cells := make([]interface{}, len(row))
	for i, c := range row {
		cells[i] = c
	}

	rng := fmt.Sprintf("%s!A:%s", s.tab, lastColumn())
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng,
		&sheetsapi.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		s.logger.Error("sheets append failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]*domain.Request, int, error) {
	const op = "sheets.Store.ReadAll"

	rows, _, skipped, err := s.readRows(ctx, op)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return rows, skipped, nil
}

// readRows fetches every data row. The second return value maps each
// decoded request to its 1-based sheet row number, which UpdateStatus
// needs to address the mutable cells.
func (s *Store) readRows(ctx context.Context, op string) ([]*domain.Request, map[uuid.UUID]int, int, error) {
	rng := fmt.Sprintf("%s!A2:%s", s.tab, lastColumn())
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		s.logger.Error("sheets read failed", slog.String("op", op), slog.Any("error", err))
		return nil, nil, 0, err
	}

	var (
		requests []*domain.Request
		rowNums  = make(map[uuid.UUID]int, len(resp.Values))
		skipped  int
	)
	for i, cells := range resp.Values {
		sheetRow := i + 2 // data starts under the header
		row, err := stringCells(cells)
		if err == nil {
			var req *domain.Request
			req, err = domain.RequestFromRow(row)
			if err == nil {
				requests = append(requests, req)
				rowNums[req.ID] = sheetRow
				continue
			}
		}
		skipped++
		s.logger.Warn("skipping malformed row",
			slog.String("op", op), slog.Int("row", sheetRow), slog.Any("error", err))
	}

	return requests, rowNums, skipped, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, responder string) error {
	const op = "sheets.Store.UpdateStatus"

	requests, rowNums, _, err := s.readRows(ctx, op)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}

	var current *domain.Request
	for _, req := range requests {
		if req.ID == id {
			current = req
			break
		}
	}
	if current == nil {
		return fmt.Errorf("%s: id %s: %w", op, id, e.ErrNotFound)
	}

	if err := domain.ValidateTransition(current.Status, status, responder); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	newResponder := current.Responder
	if status == domain.StatusOngoing {
		newResponder = responder
	}

	statusCol, _ := domain.StatusCell()
	rowNum := rowNums[id]
	rng := fmt.Sprintf("%s!%s%d:%s%d",
		s.tab, columnLetter(statusCol), rowNum, lastColumn(), rowNum)

	// Status and responder land in one Update call, the closest the
	// Sheets API gets to writing the pair atomically.
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng,
		&sheetsapi.ValueRange{Values: [][]interface{}{{string(status), newResponder}}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		s.logger.Error("sheets update failed",
			slog.String("op", op), slog.String("id", id.String()), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func stringCells(cells []interface{}) ([]string, error) {
	if len(cells) > len(domain.RowHeader) {
		return nil, fmt.Errorf("row has %d columns, want at most %d", len(cells), len(domain.RowHeader))
	}
	// The API drops trailing empty cells, so pad back to full width.
	row := make([]string, len(domain.RowHeader))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	return row, nil
}

func columnLetter(col int) string {
	return string(rune('A' + col))
}

func lastColumn() string {
	return columnLetter(len(domain.RowHeader) - 1)
}
