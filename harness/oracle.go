package harness

import (
	mverrors "github.com/davidchisnall/microvium/domain/errors"
)

// CheckPrintout compares captured output against the fixture's expected
// output. The comparison is exact string equality with no normalization:
// any difference in whitespace, ordering, or content fails, and the
// literal strings are carried in the returned MismatchError.
func CheckPrintout(actual, expected string) error {
	if actual == expected {
		return nil
	}
	return &mverrors.MismatchError{Expected: expected, Actual: actual}
}
