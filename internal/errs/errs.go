// Package errs provides sentinel errors and wrapping helpers for taskdeck.
// Sentinels are checked with errors.Is; wrapping happens at package
// boundaries only.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTransition indicates a status change the board rejects,
	// i.e. moving a task out of done.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidStatus indicates a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority indicates a priority value outside the known set.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrRemoteUnavailable indicates the task API could not serve a usable
	// task list (network error, non-2xx status or non-array payload).
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrEmptyTitle indicates a task was submitted without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidDue indicates an unparseable due date spec.
	ErrInvalidDue = errors.New("invalid due date")

	// ErrInvalidEstimate indicates an unparseable estimate spec.
	ErrInvalidEstimate = errors.New("invalid estimate")

	// ErrInvalidShiftRef indicates a shift reference outside the
	// SHIFT-YYYYMMDD-<code> format.
	ErrInvalidShiftRef = errors.New("invalid shift reference")
)

// Wrap adds context to err, preserving the chain for errors.Is.
// Returns nil when err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
