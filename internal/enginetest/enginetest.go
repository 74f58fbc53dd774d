// Package enginetest provides a scriptable in-memory engine implementing
// the ports.Engine contract. Tests register programs keyed by image bytes
// and script each export's behavior as a Go function, so host and harness
// semantics can be exercised without a real VM build.
package enginetest

import (
	"context"
	"fmt"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// exportTag marks a Value as an exported-function handle rather than a
// data handle.
const exportTag ports.Value = 1 << 32

// Behavior scripts one export: it drives host callbacks through the Call
// and returns the invocation's result value and final status.
type Behavior func(call *Call) (ports.Value, entities.Status)

// Program describes one snapshot image: the host imports it requires and
// its export table.
type Program struct {
	Imports []ports.HostFunctionID
	Exports map[ports.ExportID]Behavior
}

// Engine is a fake ports.Engine. Restores and instances are recorded so
// tests can assert lifetime invariants.
type Engine struct {
	programs map[string]*Program

	Restores  int
	Instances []*Instance
}

// NewEngine returns an empty fake engine.
func NewEngine() *Engine {
	return &Engine{programs: make(map[string]*Program)}
}

// Define registers a program under the given image bytes. Restoring any
// undefined image fails with a malformed-bytecode status.
func (e *Engine) Define(image []byte, prog *Program) {
	e.programs[string(image)] = prog
}

// Restore implements ports.Engine. Import resolution is all-or-nothing:
// the first unresolvable import fails the restore and no instance is
// created.
func (e *Engine) Restore(_ context.Context, image []byte, hostData any, resolve ports.ImportResolver) (ports.Instance, error) {
	prog, ok := e.programs[string(image)]
	if !ok {
		return nil, mverrors.NewEngineError("restore", entities.StatusMalformedBytecode)
	}

	resolved := make(map[ports.HostFunctionID]ports.HostFunction, len(prog.Imports))
	for _, id := range prog.Imports {
		fn, ok := resolve(id)
		if !ok {
			return nil, mverrors.NewEngineError("restore", entities.StatusUnresolvedImport)
		}
		resolved[id] = fn
	}

	inst := &Instance{prog: prog, hostData: hostData, resolved: resolved}
	e.Restores++
	e.Instances = append(e.Instances, inst)
	return inst, nil
}

// Instance is a restored fake VM.
type Instance struct {
	prog     *Program
	hostData any
	resolved map[ports.HostFunctionID]ports.HostFunction
	values   []any

	Frees  int
	GCRuns int
	closed bool
}

// ResolveExports implements ports.Instance, order-preserving.
func (i *Instance) ResolveExports(ids []ports.ExportID) ([]ports.Value, error) {
	out := make([]ports.Value, len(ids))
	for n, id := range ids {
		if _, ok := i.prog.Exports[id]; !ok {
			return nil, mverrors.NewEngineError("resolveExports", entities.StatusUnresolvedExport)
		}
		out[n] = exportTag | ports.Value(id)
	}
	return out, nil
}

// Call implements ports.Instance. The scripted behavior runs on the
// caller's stack; the first failing host callback aborts the invocation
// and its status becomes Call's error.
func (i *Instance) Call(_ context.Context, fn ports.Value, _ []ports.Value) (ports.Value, error) {
	if i.closed {
		return 0, mverrors.NewEngineError("call", entities.StatusUnexpected)
	}
	if fn&exportTag == 0 {
		return 0, mverrors.NewEngineError("call", entities.StatusInvalidArguments)
	}
	behavior, ok := i.prog.Exports[ports.ExportID(fn&^exportTag)]
	if !ok {
		return 0, mverrors.NewEngineError("call", entities.StatusUnresolvedExport)
	}

	call := &Call{inst: i}
	result, status := behavior(call)
	if !call.failed.OK() {
		return 0, mverrors.NewEngineError("call", call.failed)
	}
	if !status.OK() {
		return 0, mverrors.NewEngineError("call", status)
	}
	return result, nil
}

// HostData implements ports.Instance.
func (i *Instance) HostData() any { return i.hostData }

// StringValue implements ports.Instance.
func (i *Instance) StringValue(v ports.Value) (string, error) {
	val, err := i.lookup(v)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("value %d is not a string", v)
	}
	return s, nil
}

// BoolValue implements ports.Instance.
func (i *Instance) BoolValue(v ports.Value) (bool, error) {
	val, err := i.lookup(v)
	if err != nil {
		return false, err
	}
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("value %d is not a bool", v)
	}
	return b, nil
}

// RunGC implements ports.Instance.
func (i *Instance) RunGC() { i.GCRuns++ }

// Close implements ports.Instance. Frees counts engine-side releases;
// tests assert it never exceeds one per instance.
func (i *Instance) Close(context.Context) error {
	i.Frees++
	i.closed = true
	return nil
}

// Closed reports whether the instance has been freed.
func (i *Instance) Closed() bool { return i.closed }

func (i *Instance) lookup(v ports.Value) (any, error) {
	idx := int(v) - 1
	if v&exportTag != 0 || idx < 0 || idx >= len(i.values) {
		return nil, fmt.Errorf("unknown value handle %d", v)
	}
	return i.values[idx], nil
}

func (i *Instance) intern(v any) ports.Value {
	i.values = append(i.values, v)
	return ports.Value(len(i.values))
}

// Call is handed to a Behavior so it can mint values and call back into
// registered host functions, the way running bytecode would.
type Call struct {
	inst   *Instance
	failed entities.Status
}

// String mints a string value owned by the instance.
func (c *Call) String(s string) ports.Value { return c.inst.intern(s) }

// Bool mints a boolean value owned by the instance.
func (c *Call) Bool(b bool) ports.Value { return c.inst.intern(b) }

// CallHost invokes the host function resolved for id. After the first
// non-success status, the invocation is aborted: later calls are not
// dispatched, mirroring engine semantics.
func (c *Call) CallHost(id ports.HostFunctionID, args ...ports.Value) entities.Status {
	if !c.failed.OK() {
		return c.failed
	}
	fn, ok := c.inst.resolved[id]
	if !ok {
		panic(fmt.Sprintf("enginetest: program calls host function %d it did not import", id))
	}
	var result ports.Value
	status := fn(c.inst, id, &result, args)
	if !status.OK() {
		c.failed = status
	}
	return status
}
