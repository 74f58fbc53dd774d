package harness

import (
	"github.com/davidchisnall/microvium/domain/ports"
)

// Option configures a Harness.
type Option func(*Harness)

// WithFixtureParser sets a custom fixture parser.
func WithFixtureParser(p ports.FixtureParser) Option {
	return func(h *Harness) {
		h.parser = p
	}
}

// WithSnapshotLoader sets a custom snapshot loader.
func WithSnapshotLoader(l ports.SnapshotLoader) Option {
	return func(h *Harness) {
		h.loader = l
	}
}

// WithReporter sets the reporter used for progress and outcomes.
func WithReporter(r Reporter) Option {
	return func(h *Harness) {
		h.reporter = r
	}
}

// WithGCBetweenCases asks the engine to collect garbage in each instance
// after its run, before the instance is freed. Not required for
// correctness; exercises the engine's collector under the conformance
// corpus.
func WithGCBetweenCases(enabled bool) Option {
	return func(h *Harness) {
		h.runGC = enabled
	}
}
