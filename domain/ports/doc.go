// Package ports defines the interfaces the harness consumes.
// The engine port keeps the VM implementation a black box - domain and
// host logic depend on these abstractions, and infrastructure adapters
// implement them.
package ports
