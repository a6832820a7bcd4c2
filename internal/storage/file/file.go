package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
	"github.com/adityanb2025/Disaster-relief-app/pkg/e"

	"github.com/google/uuid"
)

// Store is the local fallback backend: a single CSV file with a header
// row, created on first use. Writers within the process are serialized
// by a mutex; a concurrent writer in another process races at
// whole-file granularity with last-write-wins (known limitation, the
// tabular backend is the one meant for shared deployments).
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// segment is one physical record of the file: its exact bytes plus the
// parsed cells when the line was readable. Unreadable lines keep
// row == nil and ride through rewrites untouched, so a torn write is
// flagged but never destroyed.
type segment struct {
	raw []byte
	row []string
}

func New(path string, logger *slog.Logger) (*Store, error) {
	const op = "file.New"

	s := &Store{path: path, logger: logger}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.writeHeader(); err != nil {
			return nil, e.WrapError(context.Background(), op, err)
		}
		logger.Info("created request store file", slog.String("path", path))
	} else if err != nil {
		return nil, e.WrapError(context.Background(), op, err)
	}

	return s, nil
}

func (s *Store) writeHeader() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(domain.RowHeader); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) Backend() string { return "file" }

func (s *Store) Append(ctx context.Context, req *domain.Request) error {
	const op = "file.Store.Append"

	if err := req.PrepareForAppend(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Error("open for append failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(req.Row()); err != nil {
		return e.WrapError(ctx, op, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	// Durable before return, not buffered across calls.
	if err := f.Sync(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (s *Store) ReadAll(ctx context.Context) ([]*domain.Request, int, error) {
	const op = "file.Store.ReadAll"

	s.mu.Lock()
	defer s.mu.Unlock()

	requests, _, skipped, err := s.readRows(op)
	if err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return requests, skipped, nil
}

// readRows returns the decoded requests plus the file split into
// per-record segments (header included) so UpdateStatus can rewrite
// the file without re-encoding, or losing, records it did not touch.
// Malformed and unreadable rows are counted and kept as segments.
func (s *Store) readRows(op string) ([]*domain.Request, []segment, int, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, 0, err
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1

	var (
		requests []*domain.Request
		segs     []segment
		skipped  int
		line     int
		offset   int64
	)
	for {
		row, err := r.Read()
		end := r.InputOffset()
		if errors.Is(err, io.EOF) {
			break
		}
		raw := content[offset:end]
		offset = end

		if err != nil {
			// Structurally broken CSV line: count it, keep its bytes.
			skipped++
			s.logger.Warn("skipping unreadable row",
				slog.String("op", op), slog.Int("line", line+1), slog.Any("error", err))
			segs = append(segs, segment{raw: raw})
			line++
			continue
		}
		segs = append(segs, segment{raw: raw, row: row})
		if line == 0 {
			line++
			continue // header
		}
		line++

		req, err := domain.RequestFromRow(row)
		if err != nil {
			skipped++
			s.logger.Warn("skipping malformed row",
				slog.String("op", op), slog.Int("line", line), slog.Any("error", err))
			continue
		}
		requests = append(requests, req)
	}

	return requests, segs, skipped, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, responder string) error {
	const op = "file.Store.UpdateStatus"

	s.mu.Lock()
	defer s.mu.Unlock()

	_, segs, _, err := s.readRows(op)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}

	statusCol, responderCol := domain.StatusCell()
	found := false
	for i, seg := range segs {
		if i == 0 || seg.row == nil || len(seg.row) != len(domain.RowHeader) || seg.row[0] != id.String() {
			continue
		}
		if err := domain.ValidateTransition(domain.RequestStatus(seg.row[statusCol]), status, responder); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		seg.row[statusCol] = string(status)
		if status == domain.StatusOngoing {
			seg.row[responderCol] = responder
		}
		raw, err := encodeRow(seg.row)
		if err != nil {
			return e.WrapError(ctx, op, err)
		}
		segs[i].raw = raw
		found = true
		break
	}
	if !found {
		return fmt.Errorf("%s: id %s: %w", op, id, e.ErrNotFound)
	}

	if err := s.rewrite(segs); err != nil {
		s.logger.Error("rewrite failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func encodeRow(row []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rewrite replaces the whole file via temp + rename so readers never
// observe a half-written store. Untouched segments are written back
// byte for byte, unreadable ones included.
func (s *Store) rewrite(segs []segment) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	for _, seg := range segs {
		if _, err := tmp.Write(seg.raw); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
