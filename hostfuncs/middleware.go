package hostfuncs

import (
	"log/slog"

	"github.com/davidchisnall/microvium/domain/entities"
	"github.com/davidchisnall/microvium/domain/ports"
)

// Middleware wraps a host function to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps outermost).
type Middleware func(next ports.HostFunction) ports.HostFunction

// PanicRecovery returns middleware that converts a panicking host
// function into a host-error status instead of crashing the harness. The
// engine sees an ordinary failed call and aborts the invocation.
func PanicRecovery() Middleware {
	return func(next ports.HostFunction) ports.HostFunction {
		return func(inst ports.Instance, id ports.HostFunctionID, result *ports.Value, args []ports.Value) (status entities.Status) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("host function panicked", "id", id, "panic", r)
					status = entities.StatusHostError
				}
			}()
			return next(inst, id, result, args)
		}
	}
}

// Logging returns middleware that logs every host function call and its
// status through the given logger.
func Logging(logger *slog.Logger) Middleware {
	return func(next ports.HostFunction) ports.HostFunction {
		return func(inst ports.Instance, id ports.HostFunctionID, result *ports.Value, args []ports.Value) entities.Status {
			status := next(inst, id, result, args)
			if status.OK() {
				logger.Debug("host function completed", "id", id, "args", len(args))
			} else {
				logger.Warn("host function failed", "id", id, "status", status.String())
			}
			return status
		}
	}
}
