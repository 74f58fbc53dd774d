package entities

import "fmt"

// Stage names the point in a case's lifecycle at which an error occurred.
type Stage string

const (
	StageLoad    Stage = "load"
	StageRestore Stage = "restore"
	StageResolve Stage = "resolve"
	StageInvoke  Stage = "invoke"
	StageCheck   Stage = "check"
)

// CaseReport is the outcome of one test case. A case passes when it was
// not aborted by an error, every in-program assertion held, and the
// captured printout matched the fixture (when the fixture specified one).
type CaseReport struct {
	Name        string
	Description string

	// Skipped marks a case that was deliberately not run (run-only
	// filter or fixture skip flag). Skipped cases count as passing for
	// the overall run.
	Skipped bool

	// Stage and Err describe the first unrecoverable error, if any.
	Stage Stage
	Err   error

	// Printout is the output captured from the run; Prints holds the
	// individual messages for per-print trace rendering.
	Printout string
	Prints   []string

	// AssertionPasses and AssertionFailures tally in-program assertions;
	// PassedAssertions and FailedAssertions hold their messages.
	AssertionPasses   int
	AssertionFailures int
	PassedAssertions  []string
	FailedAssertions  []string

	// MismatchErr is set when the printout differed from the fixture's
	// expected output.
	MismatchErr error
}

// Passed reports whether the case counts as passing.
func (r *CaseReport) Passed() bool {
	if r.Skipped {
		return true
	}
	return r.Err == nil && r.MismatchErr == nil && r.AssertionFailures == 0
}

// Failure returns a one-line reason for a failing case, or "" for a
// passing one. Error failures take precedence over assertion and
// mismatch failures, matching the order in which they abort a case.
func (r *CaseReport) Failure() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", r.Stage, r.Err)
	case r.AssertionFailures > 0:
		return fmt.Sprintf("%d assertion(s) failed", r.AssertionFailures)
	case r.MismatchErr != nil:
		return r.MismatchErr.Error()
	}
	return ""
}
