package wazero

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// maxImageSize mirrors the engine's 16-bit image length representation.
const maxImageSize = 0xFFFF

// adapterConfig holds configuration for the engine adapter.
type adapterConfig struct {
	// hostModuleName is the module the engine imports host calls from.
	hostModuleName string
}

func defaultAdapterConfig() adapterConfig {
	return adapterConfig{hostModuleName: "mvm_host"}
}

// AdapterOption configures the adapter.
type AdapterOption func(*adapterConfig)

// WithHostModuleName overrides the host module name the engine build was
// linked against (default: "mvm_host").
func WithHostModuleName(name string) AdapterOption {
	return func(c *adapterConfig) {
		c.hostModuleName = name
	}
}

// restoreState carries the import resolver for the restore in flight, so
// the resolve_import callback can reach it.
type restoreState struct {
	resolve  ports.ImportResolver
	resolved map[ports.HostFunctionID]ports.HostFunction
	missing  bool
}

// Engine implements ports.Engine on top of one instantiated engine
// module. VM instances share the module; a mutex serializes entry into
// the guest, and callbacks run on the goroutine already holding it.
type Engine struct {
	runtime wazero.Runtime
	module  api.Module

	mu        sync.Mutex
	instances map[uint32]*Instance
	pending   *restoreState
}

// NewEngine instantiates an engine build and wires the host module it
// imports. The caller owns the returned engine and must Close it.
func NewEngine(ctx context.Context, engineWasm []byte, opts ...AdapterOption) (*Engine, error) {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := wazero.NewRuntime(ctx)
	e := &Engine{runtime: rt, instances: make(map[uint32]*Instance)}

	builder := rt.NewHostModuleBuilder(cfg.hostModuleName)
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.resolveImport),
			[]api.ValueType{api.ValueTypeI32},
			[]api.ValueType{api.ValueTypeI32}).
		Export("resolve_import")
	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.invokeHost),
			[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32},
			[]api.ValueType{api.ValueTypeI32}).
		Export("invoke_host")
	if _, err := builder.Instantiate(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate host module: %w", err)
	}

	mod, err := rt.Instantiate(ctx, engineWasm)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate engine: %w", err)
	}
	e.module = mod
	return e, nil
}

// Close releases the runtime and every instance still alive.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Restore implements ports.Engine. The engine walks the image's import
// table during mvm_restore and calls resolve_import once per unique ID;
// any unresolved import fails the restore with no instance created.
func (e *Engine) Restore(ctx context.Context, image []byte, hostData any, resolve ports.ImportResolver) (ports.Instance, error) {
	if len(image) > maxImageSize {
		return nil, mverrors.NewEngineError("restore", entities.StatusInvalidArguments)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ptr, err := e.allocate(ctx, uint32(len(image)))
	if err != nil {
		return nil, err
	}
	if !e.module.Memory().Write(ptr, image) {
		return nil, fmt.Errorf("write image to engine memory at %#x", ptr)
	}

	state := &restoreState{
		resolve:  resolve,
		resolved: make(map[ports.HostFunctionID]ports.HostFunction),
	}
	e.pending = state
	defer func() { e.pending = nil }()

	packed, err := e.callPacked(ctx, "mvm_restore", uint64(ptr), uint64(len(image)))
	if err != nil {
		return nil, fmt.Errorf("mvm_restore: %w", err)
	}
	status, vm := unpackStatus(packed)
	if !status.OK() {
		return nil, mverrors.NewEngineError("restore", status)
	}
	if state.missing {
		// The engine build reported success despite an unresolved
		// import; refuse the instance.
		return nil, mverrors.NewEngineError("restore", entities.StatusUnresolvedImport)
	}

	inst := &Instance{
		engine:   e,
		vm:       vm,
		hostData: hostData,
		resolved: state.resolved,
	}
	e.instances[vm] = inst
	return inst, nil
}

// resolveImport is the engine's import-resolution callback. It runs
// inside mvm_restore, on the goroutine holding e.mu.
func (e *Engine) resolveImport(_ context.Context, _ api.Module, stack []uint64) {
	id := ports.HostFunctionID(uint32(stack[0]))

	state := e.pending
	if state == nil {
		stack[0] = 0
		return
	}
	fn, ok := state.resolve(id)
	if !ok {
		state.missing = true
		stack[0] = 0
		return
	}
	state.resolved[id] = fn
	stack[0] = 1
}

// invokeHost dispatches a host function call from running bytecode. It
// runs inside mvm_call, on the goroutine holding e.mu, so it must not
// take the lock itself.
func (e *Engine) invokeHost(_ context.Context, mod api.Module, stack []uint64) {
	vm := uint32(stack[0])
	id := ports.HostFunctionID(uint32(stack[1]))
	resultPtr := uint32(stack[2])
	argsPtr := uint32(stack[3])
	argCount := uint32(stack[4])

	inst, ok := e.instances[vm]
	if !ok {
		slog.Error("host call from unknown instance", "vm", vm, "id", id)
		stack[0] = uint64(entities.StatusHostError)
		return
	}
	fn, ok := inst.resolved[id]
	if !ok {
		stack[0] = uint64(entities.StatusUnresolvedImport)
		return
	}

	args := make([]ports.Value, argCount)
	for i := uint32(0); i < argCount; i++ {
		raw, ok := mod.Memory().ReadUint32Le(argsPtr + i*4)
		if !ok {
			stack[0] = uint64(entities.StatusHostError)
			return
		}
		args[i] = ports.Value(raw)
	}

	var result ports.Value
	status := fn(inst, id, &result, args)
	if status.OK() && resultPtr != 0 {
		if !mod.Memory().WriteUint32Le(resultPtr, uint32(result)) {
			status = entities.StatusHostError
		}
	}
	stack[0] = uint64(status)
}

// allocate reserves guest memory through the engine's allocate export.
func (e *Engine) allocate(ctx context.Context, size uint32) (uint32, error) {
	allocateFn := e.module.ExportedFunction("allocate")
	if allocateFn == nil {
		return 0, fmt.Errorf("engine build missing 'allocate' export")
	}
	results, err := allocateFn.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("allocate %d bytes: %w", size, err)
	}
	return uint32(results[0]), nil
}

// callPacked invokes an engine export returning the packed-i64
// convention.
func (e *Engine) callPacked(ctx context.Context, name string, params ...uint64) (uint64, error) {
	fn := e.module.ExportedFunction(name)
	if fn == nil {
		return 0, fmt.Errorf("engine build missing %q export", name)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("%s returned no results", name)
	}
	return results[0], nil
}

// unpackStatus splits a packed i64 into its status and payload halves.
func unpackStatus(packed uint64) (entities.Status, uint32) {
	return entities.Status(uint32(packed >> 32)), uint32(packed)
}
