package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced id does not exist
var ErrNotFound = errors.New("not found")

// Error is a failure reported by a store: transport, server or
// store-side validation. Op names the failed operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap turns err into a *Error for op. Nil stays nil and errors that are
// already store errors pass through unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var serr *Error
	if errors.As(err, &serr) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// NotFound builds a not-found error for a kind and id
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
