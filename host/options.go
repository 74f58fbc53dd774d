package host

import (
	"github.com/davidchisnall/microvium/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithRegistry configures the executor with a host function registry.
func WithRegistry(registry *hostfuncs.Registry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithMaxImageSize overrides the snapshot image size limit. Useful for
// engines built with a wider length representation.
func WithMaxImageSize(limit int) Option {
	return func(e *Executor) {
		e.maxImageSize = limit
	}
}
