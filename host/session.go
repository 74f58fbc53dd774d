package host

import (
	"context"
	"fmt"

	"github.com/davidchisnall/microvium/domain/entities"
	"github.com/davidchisnall/microvium/domain/ports"
)

// Session is the lifetime group of one restored VM: the instance, its
// ExecutionContext, and every Value resolved from it. All of it is torn
// down together by Close, which must run on every exit path - including
// early failure - so native VM memory never leaks across cases.
type Session struct {
	inst    ports.Instance
	execCtx *entities.ExecutionContext
	closed  bool
}

// Context returns the ExecutionContext bound to this session's instance.
// It stays readable after Close; the instance keeps a reference to it
// only until it is freed.
func (s *Session) Context() *entities.ExecutionContext {
	return s.execCtx
}

// ResolveExports looks up a batch of export IDs. Position i of the result
// corresponds to ids[i]; any absent ID fails the whole lookup.
func (s *Session) ResolveExports(ids []ports.ExportID) ([]ports.Value, error) {
	values, err := s.inst.ResolveExports(ids)
	if err != nil {
		return nil, fmt.Errorf("resolve exports: %w", err)
	}
	return values, nil
}

// Invoke calls an exported function. Host functions run synchronously
// inside the call and mutate the session's ExecutionContext; the first
// non-success status one of them returns aborts the invocation and
// surfaces here.
func (s *Session) Invoke(ctx context.Context, fn ports.Value, args []ports.Value) (ports.Value, error) {
	result, err := s.inst.Call(ctx, fn, args)
	if err != nil {
		return 0, fmt.Errorf("invoke: %w", err)
	}
	return result, nil
}

// RunGC asks the engine to collect garbage inside the instance.
func (s *Session) RunGC() {
	s.inst.RunGC()
}

// Close frees the VM instance. The engine is told to free exactly once;
// further Close calls are no-ops, so a deferred Close is always safe
// alongside an explicit one on an error path.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.inst.Close(ctx)
}
