package e

import (
	"context"
	"errors"
	"fmt"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrStorage            = errors.New("storage unavailable")
	ErrInternal           = errors.New("internal error")
	ErrDeadline           = errors.New("deadline exceeded")
	ErrCanceled           = errors.New("context canceled")
)

// WrapError normalizes backend failures into the package sentinels so
// callers can match with errors.Is. Anything that is not already a
// sentinel counts as a storage failure: "record missing" and "backend
// down" must stay distinguishable.
func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	for _, sentinel := range []error{
		ErrNotFound, ErrInvalidInput, ErrInvalidCoordinates,
		ErrIllegalTransition, ErrStorage,
	} {
		if errors.Is(err, sentinel) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrStorage)
}
