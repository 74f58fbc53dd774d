// Package errors provides the harness's structured error types.
// All types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/davidchisnall/microvium/domain/entities"
)

// SnapshotError reports a snapshot or fixture artifact that could not be
// read: missing file, permission failure, or a truncated read. It is
// fatal to the test case it belongs to.
type SnapshotError struct {
	Err  error
	Path string
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// FixtureError reports fixture metadata that could not be parsed or
// failed validation.
type FixtureError struct {
	Err  error
	Path string
}

func (e *FixtureError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("fixture %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("fixture: %v", e.Err)
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

// EngineError wraps a non-success engine status. Op names the operation
// that failed (restore, resolveExports, call).
type EngineError struct {
	Status entities.Status
	Op     string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// NewEngineError builds an EngineError from a status code. It panics if
// called with a success status, which is a programmer error.
func NewEngineError(op string, status entities.Status) *EngineError {
	if status.OK() {
		panic("errors: NewEngineError called with a success status")
	}
	return &EngineError{Status: status, Op: op}
}

// StatusOf extracts the engine status from an error chain, or
// StatusUnexpected if the chain carries no EngineError.
func StatusOf(err error) entities.Status {
	var ee *EngineError
	if stdErrors.As(err, &ee) {
		return ee.Status
	}
	return entities.StatusUnexpected
}

// MismatchError reports captured output that differs from the fixture's
// expected output. The literal strings are kept so reports can show the
// exact diff; no normalization is applied before comparing.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("printout mismatch:\nexpected: %q\nactual:   %q", e.Expected, e.Actual)
}
