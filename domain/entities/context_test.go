package entities

import "testing"

func TestAppendPrintJoinsWithNewlineBetween(t *testing.T) {
	tests := []struct {
		name   string
		prints []string
		want   string
	}{
		{"empty", nil, ""},
		{"single", []string{"hello"}, "hello"},
		{"two", []string{"a", "b"}, "a\nb"},
		{"empty strings add nothing to empty output", []string{"", ""}, ""},
		{"leading empty message is absorbed", []string{"", "b"}, "b"},
		{"trailing empty message separates", []string{"a", ""}, "a\n"},
		{"interior empty message separates twice", []string{"a", "", "b"}, "a\n\nb"},
		{"three", []string{"x", "y", "z"}, "x\ny\nz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewExecutionContext()
			for _, p := range tt.prints {
				c.AppendPrint(p)
			}
			if got := c.Printout(); got != tt.want {
				t.Errorf("Printout() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintsKeepsEveryMessage(t *testing.T) {
	c := NewExecutionContext()
	c.AppendPrint("")
	c.AppendPrint("b")

	prints := c.Prints()
	if len(prints) != 2 || prints[0] != "" || prints[1] != "b" {
		t.Errorf("Prints() = %v, want [\"\" b]", prints)
	}
	// The joined printout absorbs the leading empty message; the raw
	// message list does not.
	if got := c.Printout(); got != "b" {
		t.Errorf("Printout() = %q, want %q", got, "b")
	}
}

func TestPrintsReturnsCopy(t *testing.T) {
	c := NewExecutionContext()
	c.AppendPrint("a")

	prints := c.Prints()
	prints[0] = "mutated"

	if got := c.Prints()[0]; got != "a" {
		t.Errorf("Prints()[0] = %q after caller mutation, want %q", got, "a")
	}
}

func TestRecordAssertionTally(t *testing.T) {
	c := NewExecutionContext()
	c.RecordAssertion("a == a", true)
	c.RecordAssertion("x == y", false)
	c.RecordAssertion("b == b", true)
	c.RecordAssertion("p == q", false)

	if got := c.AssertionPasses(); got != 2 {
		t.Errorf("AssertionPasses() = %d, want 2", got)
	}
	if got := c.AssertionFailures(); got != 2 {
		t.Errorf("AssertionFailures() = %d, want 2", got)
	}

	passed := c.PassedAssertions()
	if len(passed) != 2 || passed[0] != "a == a" || passed[1] != "b == b" {
		t.Errorf("PassedAssertions() = %v, want [a == a, b == b]", passed)
	}
	failed := c.FailedAssertions()
	if len(failed) != 2 || failed[0] != "x == y" || failed[1] != "p == q" {
		t.Errorf("FailedAssertions() = %v, want [x == y, p == q]", failed)
	}
}

func TestAssertionMessagesReturnCopies(t *testing.T) {
	c := NewExecutionContext()
	c.RecordAssertion("a == a", true)
	c.RecordAssertion("x == y", false)

	c.PassedAssertions()[0] = "mutated"
	c.FailedAssertions()[0] = "mutated"

	if got := c.PassedAssertions()[0]; got != "a == a" {
		t.Errorf("PassedAssertions()[0] = %q after caller mutation, want %q", got, "a == a")
	}
	if got := c.FailedAssertions()[0]; got != "x == y" {
		t.Errorf("FailedAssertions()[0] = %q after caller mutation, want %q", got, "x == y")
	}
}
