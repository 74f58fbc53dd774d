package harness

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/davidchisnall/microvium/domain/entities"
)

// Reporter renders case progress and outcomes for the operator.
type Reporter interface {
	// Running announces a case before it executes.
	Running(name string)
	// Case renders one finished case.
	Case(report *entities.CaseReport)
	// Summary renders the whole run.
	Summary(reports []entities.CaseReport)
}

// ConsoleReporter writes pass/fail lines with ANSI colors.
type ConsoleReporter struct {
	out  io.Writer
	pass *color.Color
	fail *color.Color
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		out:  out,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}
}

// Running implements Reporter.
func (r *ConsoleReporter) Running(name string) {
	fmt.Fprintf(r.out, "%s... running\n", name)
}

// Case implements Reporter.
func (r *ConsoleReporter) Case(report *entities.CaseReport) {
	if report.Skipped {
		fmt.Fprintf(r.out, "%s... skipping\n", report.Name)
		return
	}

	for _, msg := range report.Prints {
		fmt.Fprintf(r.out, "    Prints: %s\n", msg)
	}
	for _, msg := range report.PassedAssertions {
		r.pass.Fprintf(r.out, "    Pass: %s\n", msg)
	}
	for _, msg := range report.FailedAssertions {
		r.fail.Fprintf(r.out, "    Fail: %s\n", msg)
	}

	if report.Passed() {
		r.pass.Fprintf(r.out, "    Pass: %s\n", report.Name)
		return
	}
	r.fail.Fprintf(r.out, "    Fail: %s: %s\n", report.Name, report.Failure())
}

// Summary implements Reporter.
func (r *ConsoleReporter) Summary(reports []entities.CaseReport) {
	var passed, failed, skipped int
	for i := range reports {
		switch {
		case reports[i].Skipped:
			skipped++
		case reports[i].Passed():
			passed++
		default:
			failed++
		}
	}

	line := fmt.Sprintf("%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		r.fail.Fprint(r.out, line)
		return
	}
	r.pass.Fprint(r.out, line)
}

// NopReporter discards all output. Useful in tests.
type NopReporter struct{}

func (NopReporter) Running(string)                {}
func (NopReporter) Case(*entities.CaseReport)     {}
func (NopReporter) Summary([]entities.CaseReport) {}
