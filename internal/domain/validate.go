package domain

import (
	"fmt"
	"time"

	"github.com/adityanb2025/Disaster-relief-app/pkg/e"

	"github.com/google/uuid"
)

// PrepareForAppend assigns the system fields a fresh record is missing
// (id, creation timestamp) and forces the initial status, then checks
// the creation invariants. Backends call it before persisting; it never
// mutates an invalid record into a valid one beyond those defaults.
func (r *Request) PrepareForAppend() error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	r.Status = StatusPending
	r.Responder = ""

	if r.Name == "" {
		return fmt.Errorf("name required: %w", e.ErrInvalidInput)
	}
	if r.Phone == "" {
		return fmt.Errorf("phone required: %w", e.ErrInvalidInput)
	}
	if !r.Need.Valid() {
		return fmt.Errorf("unknown need %q: %w", r.Need, e.ErrInvalidInput)
	}
	if (r.Lat == nil) != (r.Lon == nil) {
		return fmt.Errorf("unpaired coordinates: %w", e.ErrInvalidCoordinates)
	}
	if r.HasCoordinates() {
		if *r.Lat < -90 || *r.Lat > 90 || *r.Lon < -180 || *r.Lon > 180 {
			return fmt.Errorf("coordinates out of range: %w", e.ErrInvalidCoordinates)
		}
	}
	return nil
}

// ValidateTransition checks a status move against the state machine and
// the responder rule for ongoing.
func ValidateTransition(from, to RequestStatus, responder string) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q: %w", to, e.ErrInvalidInput)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, e.ErrIllegalTransition)
	}
	if to == StatusOngoing && responder == "" {
		return fmt.Errorf("responder required for ongoing: %w", e.ErrInvalidInput)
	}
	return nil
}
