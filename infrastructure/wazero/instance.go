package wazero

import (
	"context"
	"fmt"

	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// Instance implements ports.Instance for one restored VM inside the
// engine module.
type Instance struct {
	engine   *Engine
	vm       uint32
	hostData any
	resolved map[ports.HostFunctionID]ports.HostFunction
	closed   bool
}

// ResolveExports implements ports.Instance.
func (i *Instance) ResolveExports(ids []ports.ExportID) ([]ports.Value, error) {
	ctx := context.Background()
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()

	values := make([]ports.Value, len(ids))
	for n, id := range ids {
		packed, err := i.engine.callPacked(ctx, "mvm_resolveExport", uint64(i.vm), uint64(id))
		if err != nil {
			return nil, fmt.Errorf("mvm_resolveExport: %w", err)
		}
		status, value := unpackStatus(packed)
		if !status.OK() {
			return nil, mverrors.NewEngineError("resolveExports", status)
		}
		values[n] = ports.Value(value)
	}
	return values, nil
}

// Call implements ports.Instance. Host functions dispatched by the
// engine during the call run through invokeHost on this goroutine.
func (i *Instance) Call(ctx context.Context, fn ports.Value, args []ports.Value) (ports.Value, error) {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()

	var argsPtr uint32
	if len(args) > 0 {
		ptr, err := i.engine.allocate(ctx, uint32(len(args)*4))
		if err != nil {
			return 0, err
		}
		for n, arg := range args {
			if !i.engine.module.Memory().WriteUint32Le(ptr+uint32(n)*4, uint32(arg)) {
				return 0, fmt.Errorf("write argument %d to engine memory", n)
			}
		}
		argsPtr = ptr
	}

	packed, err := i.engine.callPacked(ctx, "mvm_call",
		uint64(i.vm), uint64(uint32(fn)), uint64(argsPtr), uint64(len(args)))
	if err != nil {
		return 0, fmt.Errorf("mvm_call: %w", err)
	}
	status, result := unpackStatus(packed)
	if !status.OK() {
		return 0, mverrors.NewEngineError("call", status)
	}
	return ports.Value(result), nil
}

// HostData implements ports.Instance.
func (i *Instance) HostData() any { return i.hostData }

// StringValue implements ports.Instance.
func (i *Instance) StringValue(v ports.Value) (string, error) {
	ctx := context.Background()
	packed, err := i.engine.callPacked(ctx, "mvm_toStringUtf8", uint64(i.vm), uint64(uint32(v)))
	if err != nil {
		return "", fmt.Errorf("mvm_toStringUtf8: %w", err)
	}
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	data, ok := i.engine.module.Memory().Read(ptr, length)
	if !ok {
		return "", fmt.Errorf("read string at %#x+%d from engine memory", ptr, length)
	}
	// Copy out: guest memory may move on the next engine call.
	return string(data), nil
}

// BoolValue implements ports.Instance.
func (i *Instance) BoolValue(v ports.Value) (bool, error) {
	fn := i.engine.module.ExportedFunction("mvm_toBool")
	if fn == nil {
		return false, fmt.Errorf("engine build missing %q export", "mvm_toBool")
	}
	results, err := fn.Call(context.Background(), uint64(i.vm), uint64(uint32(v)))
	if err != nil {
		return false, fmt.Errorf("mvm_toBool: %w", err)
	}
	return len(results) > 0 && uint32(results[0]) != 0, nil
}

// RunGC implements ports.Instance.
func (i *Instance) RunGC() {
	fn := i.engine.module.ExportedFunction("mvm_runGC")
	if fn == nil {
		return
	}
	// GC is advisory; a trap here does not invalidate the run.
	_, _ = fn.Call(context.Background(), uint64(i.vm))
}

// Close implements ports.Instance. The engine is told to free the VM
// exactly once.
func (i *Instance) Close(ctx context.Context) error {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	delete(i.engine.instances, i.vm)

	fn := i.engine.module.ExportedFunction("mvm_free")
	if fn == nil {
		return fmt.Errorf("engine build missing %q export", "mvm_free")
	}
	if _, err := fn.Call(ctx, uint64(i.vm)); err != nil {
		return fmt.Errorf("mvm_free: %w", err)
	}
	return nil
}

var (
	_ ports.Instance = (*Instance)(nil)
	_ ports.Engine   = (*Engine)(nil)
)
