// Package harness discovers conformance test cases, runs each one
// against the host executor, and judges the outcome against its fixture.
// Failures are collected, not fatal: every discovered case runs before
// the harness reports an overall verdict.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davidchisnall/microvium/domain/entities"
	"github.com/davidchisnall/microvium/domain/ports"
	"github.com/davidchisnall/microvium/host"
	"github.com/davidchisnall/microvium/infrastructure/parser"
	"github.com/davidchisnall/microvium/infrastructure/snapshot"
)

// Artifact naming convention shared with the snapshot compiler.
const (
	// TestFileExt marks a source file under TestDir as a test case.
	TestFileExt = ".test.mvms"
	// FixtureFileName is the per-case fixture inside the artifacts dir.
	FixtureFileName = "0.meta.yaml"
	// SnapshotFileName is the per-case snapshot image inside the
	// artifacts dir.
	SnapshotFileName = "2.post-gc.mvm-bc"
)

// Config locates the test corpus.
type Config struct {
	// TestDir holds the <name>.test.mvms sources that define which cases
	// exist.
	TestDir string `validate:"required"`

	// ArtifactsDir holds one directory per case with its fixture and
	// snapshot image.
	ArtifactsDir string `validate:"required"`

	// RunOnly, when non-empty, runs just the named case and marks every
	// other case as deliberately skipped.
	RunOnly string
}

// validate is a package-level singleton; constructing a validator per
// call is expensive.
var validate = validator.New()

// Case is one discovered test case.
type Case struct {
	Name         string
	FixturePath  string
	SnapshotPath string
}

// Harness runs discovered cases serially against one executor. Cases
// never share an instance or an execution context, only the read-only
// registry inside the executor.
type Harness struct {
	cfg      Config
	executor *host.Executor
	parser   ports.FixtureParser
	loader   ports.SnapshotLoader
	reporter Reporter
	runGC    bool
}

// New creates a harness. The config is validated eagerly so a missing
// corpus location fails construction, not the middle of a run.
func New(cfg Config, executor *host.Executor, opts ...Option) (*Harness, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("harness config: %w", err)
	}
	if executor == nil {
		return nil, fmt.Errorf("harness: executor is required")
	}

	h := &Harness{
		cfg:      cfg,
		executor: executor,
		parser:   parser.NewYamlFixtureParser(),
		loader:   snapshot.NewLoader(),
		reporter: NewConsoleReporter(os.Stdout),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Discover lists the cases under TestDir in name order.
func (h *Harness) Discover() ([]Case, error) {
	entries, err := os.ReadDir(h.cfg.TestDir)
	if err != nil {
		return nil, fmt.Errorf("discover cases: %w", err)
	}

	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), TestFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), TestFileExt)
		dir := filepath.Join(h.cfg.ArtifactsDir, name)
		cases = append(cases, Case{
			Name:         name,
			FixturePath:  filepath.Join(dir, FixtureFileName),
			SnapshotPath: filepath.Join(dir, SnapshotFileName),
		})
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// Run executes every discovered case and returns the per-case reports
// and whether the run as a whole passed. A failing case never stops the
// run; only a discovery error does.
func (h *Harness) Run(ctx context.Context) ([]entities.CaseReport, bool, error) {
	cases, err := h.Discover()
	if err != nil {
		return nil, false, err
	}

	ok := true
	reports := make([]entities.CaseReport, 0, len(cases))
	for _, tc := range cases {
		report := h.runCase(ctx, tc)
		h.reporter.Case(&report)
		if !report.Passed() {
			ok = false
		}
		reports = append(reports, report)
	}
	h.reporter.Summary(reports)
	return reports, ok, nil
}

// runCase drives one case through its lifecycle: load fixture and image,
// restore, invoke, check, free. The first unrecoverable error aborts the
// case after best-effort teardown; assertion failures and printout
// mismatches are recorded without aborting.
func (h *Harness) runCase(ctx context.Context, tc Case) entities.CaseReport {
	report := entities.CaseReport{Name: tc.Name}

	if h.cfg.RunOnly != "" && tc.Name != h.cfg.RunOnly {
		report.Skipped = true
		return report
	}
	h.reporter.Running(tc.Name)

	data, err := h.loader.Load(tc.FixturePath)
	if err != nil {
		report.Stage, report.Err = entities.StageLoad, err
		return report
	}
	fixture, err := h.parser.Parse(data)
	if err != nil {
		report.Stage, report.Err = entities.StageLoad, err
		return report
	}
	report.Description = fixture.Description

	if fixture.Skip {
		report.Skipped = true
		return report
	}

	image, err := h.loader.Load(tc.SnapshotPath)
	if err != nil {
		report.Stage, report.Err = entities.StageLoad, err
		return report
	}

	h.execute(ctx, fixture, image, &report)
	return report
}

// execute runs the restored part of a case. Teardown is deferred so it
// happens on every exit path, and the execution context is snapshotted
// into the report even when the invocation aborted partway: effects that
// already happened stay observable.
func (h *Harness) execute(ctx context.Context, fixture *entities.Fixture, image []byte, report *entities.CaseReport) {
	session, err := h.executor.Restore(ctx, image)
	if err != nil {
		report.Stage, report.Err = entities.StageRestore, err
		return
	}
	defer func() {
		execCtx := session.Context()
		report.Printout = execCtx.Printout()
		report.Prints = execCtx.Prints()
		report.AssertionPasses = execCtx.AssertionPasses()
		report.AssertionFailures = execCtx.AssertionFailures()
		report.PassedAssertions = execCtx.PassedAssertions()
		report.FailedAssertions = execCtx.FailedAssertions()

		if h.runGC {
			session.RunGC()
		}
		if cerr := session.Close(ctx); cerr != nil {
			slog.Warn("teardown failed", "case", report.Name, "error", cerr)
		}
	}()

	if fixture.RunExportedFunction != nil {
		exportID := ports.ExportID(*fixture.RunExportedFunction)
		fns, err := session.ResolveExports([]ports.ExportID{exportID})
		if err != nil {
			report.Stage, report.Err = entities.StageResolve, err
			return
		}
		if _, err := session.Invoke(ctx, fns[0], nil); err != nil {
			report.Stage, report.Err = entities.StageInvoke, err
			return
		}
	}

	if fixture.ExpectedPrintout != nil {
		if err := CheckPrintout(session.Context().Printout(), *fixture.ExpectedPrintout); err != nil {
			report.MismatchErr = err
		}
	}
}
