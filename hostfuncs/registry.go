package hostfuncs

import (
	"fmt"
	"sort"

	"github.com/davidchisnall/microvium/domain/ports"
)

// Registry is an immutable table of host functions keyed by import ID.
// Once created via NewRegistry, functions cannot be added or removed,
// which makes lookups lock-free and safe from any number of instances.
type Registry struct {
	funcs map[ports.HostFunctionID]ports.HostFunction
	ids   []ports.HostFunctionID // sorted for consistent iteration
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	funcs      map[ports.HostFunctionID]ports.HostFunction
	middleware []Middleware
	errors     []error
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable Registry with the given options.
// Registering the same ID twice is a construction error, not a runtime
// condition: the snapshot compiler owns the ID space and duplicates mean
// the host build is wrong.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	b := &registryBuilder{
		funcs: make(map[ports.HostFunctionID]ports.HostFunction),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	ids := make([]ports.HostFunctionID, 0, len(b.funcs))
	for id := range b.funcs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Apply middleware so the first registered wraps outermost.
	wrapped := make(map[ports.HostFunctionID]ports.HostFunction, len(b.funcs))
	for id, fn := range b.funcs {
		w := fn
		for i := len(b.middleware) - 1; i >= 0; i-- {
			w = b.middleware[i](w)
		}
		wrapped[id] = w
	}

	return &Registry{funcs: wrapped, ids: ids}, nil
}

// WithFunction registers a host function under the given import ID.
func WithFunction(id ports.HostFunctionID, fn ports.HostFunction) RegistryOption {
	return func(b *registryBuilder) {
		if fn == nil {
			b.errors = append(b.errors, fmt.Errorf("host function %d is nil", id))
			return
		}
		if _, exists := b.funcs[id]; exists {
			b.errors = append(b.errors, fmt.Errorf("duplicate host function ID: %d", id))
			return
		}
		b.funcs[id] = fn
	}
}

// WithMiddleware appends middleware applied to every registered function.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// Resolve is a pure lookup of the function registered under id.
func (r *Registry) Resolve(id ports.HostFunctionID) (ports.HostFunction, bool) {
	fn, ok := r.funcs[id]
	return fn, ok
}

// Resolver adapts the registry to the engine's import-resolution callback.
func (r *Registry) Resolver() ports.ImportResolver {
	return r.Resolve
}

// Has reports whether a function is registered under id.
func (r *Registry) Has(id ports.HostFunctionID) bool {
	_, ok := r.funcs[id]
	return ok
}

// IDs returns the registered import IDs in ascending order.
func (r *Registry) IDs() []ports.HostFunctionID {
	out := make([]ports.HostFunctionID, len(r.ids))
	copy(out, r.ids)
	return out
}
