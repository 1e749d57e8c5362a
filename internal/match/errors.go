package match

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a mutation targets an id the store no longer holds.
	ErrNotFound = errors.New("match not found")
	// ErrStoreUnavailable wraps transport and database failures.
	ErrStoreUnavailable = errors.New("match store unavailable")
	// ErrInvalidTransition is returned for actions that make no sense in the current state.
	ErrInvalidTransition = errors.New("invalid match transition")
	// ErrInvalidValue is returned for out-of-range or malformed input.
	ErrInvalidValue = errors.New("invalid match value")
	// ErrStale is returned when a conditional patch no longer matches the stored document.
	ErrStale = errors.New("match changed since it was read")
)

func invalidTransition(action string, from State) error {
	return fmt.Errorf("%w: cannot %s a %s match", ErrInvalidTransition, action, from)
}

func invalidValue(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

func stale(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStale, fmt.Sprintf(format, args...))
}

// Unavailable wraps err as a store failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
