package hostfuncs

import (
	"log/slog"

	"github.com/davidchisnall/microvium/domain/entities"
	"github.com/davidchisnall/microvium/domain/ports"
)

// Import IDs the conformance snapshots are compiled against.
const (
	// PrintID is the import ID of the print host function.
	PrintID ports.HostFunctionID = 1
	// AssertID is the import ID of the assert host function.
	AssertID ports.HostFunctionID = 2
)

// Print appends its single string argument to the run's captured
// printout. A newline separates messages once output has accumulated.
func Print(inst ports.Instance, id ports.HostFunctionID, result *ports.Value, args []ports.Value) entities.Status {
	execCtx, ok := inst.HostData().(*entities.ExecutionContext)
	if !ok {
		return entities.StatusHostError
	}
	if len(args) != 1 {
		return entities.StatusInvalidArguments
	}
	message, err := inst.StringValue(args[0])
	if err != nil {
		return entities.StatusInvalidArguments
	}

	slog.Debug("prints", "message", message)
	execCtx.AppendPrint(message)
	return entities.StatusSuccess
}

// Assert records an in-program assertion: args[0] is the condition,
// args[1] the message. A false condition is recorded as a failed
// assertion but does not abort the run; bytecode may keep executing.
func Assert(inst ports.Instance, id ports.HostFunctionID, result *ports.Value, args []ports.Value) entities.Status {
	execCtx, ok := inst.HostData().(*entities.ExecutionContext)
	if !ok {
		return entities.StatusHostError
	}
	if len(args) < 2 {
		return entities.StatusInvalidArguments
	}
	assertion, err := inst.BoolValue(args[0])
	if err != nil {
		return entities.StatusInvalidArguments
	}
	message, err := inst.StringValue(args[1])
	if err != nil {
		return entities.StatusInvalidArguments
	}

	execCtx.RecordAssertion(message, assertion)
	return entities.StatusSuccess
}

// Default returns a registry with the built-in conformance functions.
// It panics on a construction error, which cannot happen with the fixed
// built-in table.
func Default(opts ...RegistryOption) *Registry {
	all := append([]RegistryOption{
		WithFunction(PrintID, Print),
		WithFunction(AssertID, Assert),
	}, opts...)
	r, err := NewRegistry(all...)
	if err != nil {
		panic("hostfuncs: building default registry: " + err.Error())
	}
	return r
}
