package ports

import (
	"context"

	"github.com/davidchisnall/microvium/domain/entities"
)

// HostFunctionID identifies a host function the bytecode imports. The ID
// is chosen by the snapshot's compiler and embedded in the image.
type HostFunctionID uint16

// ExportID identifies a function the snapshot exposes to the host.
type ExportID uint16

// Value is an opaque engine value handle. A Value is only meaningful to
// the instance that produced it and must not outlive that instance.
type Value uint64

// HostFunction is a native callable invoked from inside bytecode
// execution, on the same logical call stack as the invocation that
// triggered it. The callback carries no context parameter: the function
// recovers its ExecutionContext through the instance's host-data slot.
// Validating len(args) against the expected arity is the function's own
// responsibility; a non-success status aborts the whole invocation.
type HostFunction func(inst Instance, id HostFunctionID, result *Value, args []Value) entities.Status

// ImportResolver maps an import ID to its host function during restore.
// The engine calls it once per unique unresolved import in the image; a
// false return fails the restore with an unresolved-import status.
type ImportResolver func(id HostFunctionID) (HostFunction, bool)

// Engine restores VM instances from snapshot images. Implementations are
// black boxes; failures carry an entities.Status via errors.EngineError.
type Engine interface {
	// Restore reconstructs a live instance from a snapshot image. The
	// hostData value is bound to the instance for its whole lifetime and
	// retrievable from Instance.HostData. Restore is all-or-nothing: on
	// error no instance is returned and nothing is leaked.
	Restore(ctx context.Context, image []byte, hostData any, resolve ImportResolver) (Instance, error)
}

// Instance is a restored VM. An instance, its host data, and every Value
// derived from it form one lifetime group torn down together by Close.
// Instances are not safe for concurrent use.
type Instance interface {
	// ResolveExports looks up a batch of export IDs. The result is
	// order-preserving: values[i] corresponds to ids[i]. Any absent ID
	// fails the whole lookup.
	ResolveExports(ids []ExportID) ([]Value, error)

	// Call invokes an exported function with the given arguments. Host
	// functions run synchronously inside Call; the first non-success
	// status returned by one aborts the invocation and becomes Call's
	// error.
	Call(ctx context.Context, fn Value, args []Value) (Value, error)

	// HostData returns the value bound at restore time.
	HostData() any

	// StringValue decodes a value as UTF-8 text.
	StringValue(v Value) (string, error)

	// BoolValue decodes a value as a boolean.
	BoolValue(v Value) (bool, error)

	// RunGC asks the engine to collect garbage. Optional; never required
	// for correctness of a single run.
	RunGC()

	// Close releases all memory owned by the instance. It must be the
	// last operation performed on the instance.
	Close(ctx context.Context) error
}
