package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Both backends persist requests as flat rows with this header, so the
// sheet and the fallback file stay column-compatible.
var RowHeader = []string{
	"id", "timestamp", "name", "phone", "address",
	"need", "urgency", "extra", "lat", "lon", "status", "responder",
}

const (
	rowColStatus    = 10
	rowColResponder = 11
)

// StatusCell returns the zero-based column indexes of the two mutable
// cells, the only ones an update is allowed to touch.
func StatusCell() (status, responder int) {
	return rowColStatus, rowColResponder
}

// Row flattens the request in RowHeader order. Absent coordinates
// become empty cells.
func (r *Request) Row() []string {
	lat, lon := "", ""
	if r.HasCoordinates() {
		lat = strconv.FormatFloat(*r.Lat, 'f', -1, 64)
		lon = strconv.FormatFloat(*r.Lon, 'f', -1, 64)
	}
	return []string{
		r.ID.String(),
		r.Timestamp.Format(time.RFC3339),
		r.Name,
		r.Phone,
		r.Address,
		string(r.Need),
		r.Urgency,
		r.Extra,
		lat,
		lon,
		string(r.Status),
		r.Responder,
	}
}

// RequestFromRow parses a stored row. Structural defects (wrong arity,
// bad id or timestamp, unpaired or out-of-range coordinates, unknown
// status) make the row malformed; need and urgency labels are carried
// as stored since old data may predate the current option lists.
func RequestFromRow(row []string) (*Request, error) {
	if len(row) != len(RowHeader) {
		return nil, fmt.Errorf("row has %d columns, want %d", len(row), len(RowHeader))
	}

	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", row[0], err)
	}
	ts, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", row[1], err)
	}

	lat, lon, err := parseCoordCells(row[8], row[9])
	if err != nil {
		return nil, err
	}

	status := RequestStatus(row[rowColStatus])
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", row[rowColStatus])
	}
	if row[5] == "" {
		return nil, fmt.Errorf("empty need column")
	}

	return &Request{
		ID:        id,
		Timestamp: ts,
		Name:      row[2],
		Phone:     row[3],
		Address:   row[4],
		Need:      NeedType(row[5]),
		Urgency:   row[6],
		Extra:     row[7],
		Lat:       lat,
		Lon:       lon,
		Status:    status,
		Responder: row[rowColResponder],
	}, nil
}

func parseCoordCells(latCell, lonCell string) (*float64, *float64, error) {
	if latCell == "" && lonCell == "" {
		return nil, nil, nil
	}
	if latCell == "" || lonCell == "" {
		return nil, nil, fmt.Errorf("unpaired coordinates lat=%q lon=%q", latCell, lonCell)
	}
	lat, err := strconv.ParseFloat(latCell, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("bad lat %q: %w", latCell, err)
	}
	lon, err := strconv.ParseFloat(lonCell, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("bad lon %q: %w", lonCell, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, nil, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}
	return &lat, &lon, nil
}
