package harness

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
)

func newTestReporter() (*ConsoleReporter, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return NewConsoleReporter(&buf), &buf
}

func TestConsoleReporterRunning(t *testing.T) {
	r, buf := newTestReporter()
	r.Running("closures")
	assert.Equal(t, "closures... running\n", buf.String())
}

func TestConsoleReporterPassingCase(t *testing.T) {
	r, buf := newTestReporter()
	r.Case(&entities.CaseReport{
		Name:             "closures",
		AssertionPasses:  2,
		PassedAssertions: []string{"a == a", "b == b"},
	})
	assert.Equal(t, "    Pass: a == a\n    Pass: b == b\n    Pass: closures\n", buf.String())
}

func TestConsoleReporterPrintTrace(t *testing.T) {
	r, buf := newTestReporter()
	r.Case(&entities.CaseReport{
		Name:     "prints",
		Printout: "a\nb",
		Prints:   []string{"a", "b"},
	})
	assert.Equal(t, "    Prints: a\n    Prints: b\n    Pass: prints\n", buf.String())
}

func TestConsoleReporterSkippedCase(t *testing.T) {
	r, buf := newTestReporter()
	r.Case(&entities.CaseReport{Name: "wip", Skipped: true})
	assert.Equal(t, "wip... skipping\n", buf.String())
}

func TestConsoleReporterFailedAssertions(t *testing.T) {
	r, buf := newTestReporter()
	r.Case(&entities.CaseReport{
		Name:              "asserts",
		AssertionFailures: 1,
		FailedAssertions:  []string{"x == y"},
	})
	assert.Contains(t, buf.String(), "    Fail: x == y\n")
	assert.Contains(t, buf.String(), "    Fail: asserts:")
}

func TestConsoleReporterMismatch(t *testing.T) {
	r, buf := newTestReporter()
	r.Case(&entities.CaseReport{
		Name:        "printout",
		MismatchErr: &mverrors.MismatchError{Expected: "a", Actual: "b"},
	})
	assert.Contains(t, buf.String(), "Fail: printout:")
	assert.Contains(t, buf.String(), `"a"`)
	assert.Contains(t, buf.String(), `"b"`)
}

func TestConsoleReporterSummary(t *testing.T) {
	r, buf := newTestReporter()
	r.Summary([]entities.CaseReport{
		{Name: "a"},
		{Name: "b", MismatchErr: &mverrors.MismatchError{Expected: "x", Actual: "y"}},
		{Name: "c", Skipped: true},
	})
	assert.Equal(t, "1 passed, 1 failed, 1 skipped\n", buf.String())
}
