package host

import (
	"context"
	"fmt"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
	"github.com/davidchisnall/microvium/hostfuncs"
)

// DefaultMaxImageSize is the largest snapshot image the host will hand to
// the engine. Engine image lengths are 16-bit.
const DefaultMaxImageSize = 0xFFFF

// Executor restores snapshot images against a fixed host function
// registry. It holds no per-run state: every Restore produces an
// independent Session, so sessions from one Executor may run on
// different goroutines as long as each Session stays on one.
type Executor struct {
	engine       ports.Engine
	registry     *hostfuncs.Registry
	maxImageSize int
}

// NewExecutor creates an executor backed by the given engine. Without a
// WithRegistry option the built-in conformance registry is used.
func NewExecutor(engine ports.Engine, opts ...Option) (*Executor, error) {
	if engine == nil {
		return nil, fmt.Errorf("host: engine is required")
	}

	e := &Executor{engine: engine, maxImageSize: DefaultMaxImageSize}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = hostfuncs.Default()
	}
	return e, nil
}

// Registry returns the host function registry the executor resolves
// imports from.
func (e *Executor) Registry() *hostfuncs.Registry {
	return e.registry
}

// Restore reconstructs a VM instance from image and binds a fresh
// ExecutionContext to it. Oversized images are rejected with an
// invalid-arguments engine error before the engine sees them. On failure
// no instance exists and there is nothing to tear down; on success the
// caller owns the returned Session and must Close it.
func (e *Executor) Restore(ctx context.Context, image []byte) (*Session, error) {
	if len(image) > e.maxImageSize {
		return nil, fmt.Errorf("image is %d bytes, limit %d: %w", len(image), e.maxImageSize,
			mverrors.NewEngineError("restore", entities.StatusInvalidArguments))
	}

	execCtx := entities.NewExecutionContext()
	inst, err := e.engine.Restore(ctx, image, execCtx, e.registry.Resolver())
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return &Session{inst: inst, execCtx: execCtx}, nil
}
