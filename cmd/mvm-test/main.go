// Command mvm-test runs the end-to-end conformance corpus against a
// WebAssembly build of the VM engine. It exits non-zero if any case that
// was not deliberately skipped failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/davidchisnall/microvium/harness"
	"github.com/davidchisnall/microvium/host"
	"github.com/davidchisnall/microvium/hostfuncs"
	"github.com/davidchisnall/microvium/infrastructure/parser"
	mvmwazero "github.com/davidchisnall/microvium/infrastructure/wazero"
)

func main() {
	var (
		testDir      = flag.String("tests", "test/end-to-end/tests", "directory of <name>.test.mvms case sources")
		artifactsDir = flag.String("artifacts", "test/end-to-end/artifacts", "directory of per-case fixtures and snapshots")
		enginePath   = flag.String("engine", "", "path to the engine wasm build")
		only         = flag.String("only", "", "run only the named case, skip the rest")
		runGC        = flag.Bool("gc", false, "run the engine GC after each case")
		verbose      = flag.Bool("v", false, "enable debug logging")
		printSchema  = flag.Bool("schema", false, "print the fixture JSON schema and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *printSchema {
		schema, err := parser.FixtureSchema()
		if err != nil {
			slog.Error("failed to build fixture schema", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	if *enginePath == "" {
		slog.Error("missing required -engine flag")
		flag.Usage()
		os.Exit(2)
	}
	engineWasm, err := os.ReadFile(*enginePath)
	if err != nil {
		slog.Error("failed to read engine build", "path", *enginePath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	engine, err := mvmwazero.NewEngine(ctx, engineWasm)
	if err != nil {
		slog.Error("failed to start engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close(ctx)

	registry := hostfuncs.Default(
		hostfuncs.WithMiddleware(hostfuncs.PanicRecovery(), hostfuncs.Logging(logger)),
	)
	executor, err := host.NewExecutor(engine, host.WithRegistry(registry))
	if err != nil {
		slog.Error("failed to create executor", "error", err)
		os.Exit(1)
	}

	h, err := harness.New(harness.Config{
		TestDir:      *testDir,
		ArtifactsDir: *artifactsDir,
		RunOnly:      *only,
	}, executor, harness.WithGCBetweenCases(*runGC))
	if err != nil {
		slog.Error("failed to create harness", "error", err)
		os.Exit(1)
	}

	_, ok, err := h.Run(ctx)
	if err != nil {
		slog.Error("run aborted", "error", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}
