package entities

import "strings"

// ExecutionContext is the per-instance mutable state a VM program acts on
// through host functions: the captured printout and the assertion tally.
//
// Exactly one ExecutionContext is bound to a VM instance at restore time
// and recovered by host callbacks through the instance's host-data slot.
// A single run is single-threaded by contract, so the context is not
// safe for concurrent use; isolation between cases comes from never
// sharing a context across instances.
type ExecutionContext struct {
	printout strings.Builder
	prints   []string

	passedAssertions []string
	failedAssertions []string
}

// NewExecutionContext returns an empty context ready to bind to a fresh
// VM instance.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{}
}

// AppendPrint records one print call. A separator newline is written
// only when output has already accumulated, so empty messages printed
// while the printout is still empty leave it empty.
func (c *ExecutionContext) AppendPrint(message string) {
	if c.printout.Len() > 0 {
		c.printout.WriteByte('\n')
	}
	c.printout.WriteString(message)
	c.prints = append(c.prints, message)
}

// Printout returns everything printed so far, in call order.
func (c *ExecutionContext) Printout() string {
	return c.printout.String()
}

// Prints returns the individual printed messages, in call order.
func (c *ExecutionContext) Prints() []string {
	out := make([]string, len(c.prints))
	copy(out, c.prints)
	return out
}

// RecordAssertion tallies one in-program assertion outcome. The message
// is kept either way so the case report can show every assertion.
func (c *ExecutionContext) RecordAssertion(message string, ok bool) {
	if ok {
		c.passedAssertions = append(c.passedAssertions, message)
		return
	}
	c.failedAssertions = append(c.failedAssertions, message)
}

// AssertionPasses returns the number of assertions that held.
func (c *ExecutionContext) AssertionPasses() int {
	return len(c.passedAssertions)
}

// AssertionFailures returns the number of assertions that failed.
func (c *ExecutionContext) AssertionFailures() int {
	return len(c.failedAssertions)
}

// PassedAssertions returns the messages of assertions that held, in the
// order they were recorded.
func (c *ExecutionContext) PassedAssertions() []string {
	out := make([]string, len(c.passedAssertions))
	copy(out, c.passedAssertions)
	return out
}

// FailedAssertions returns the messages of failed assertions, in the
// order they were recorded.
func (c *ExecutionContext) FailedAssertions() []string {
	out := make([]string, len(c.failedAssertions))
	copy(out, c.failedAssertions)
	return out
}
