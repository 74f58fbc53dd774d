// Package entities provides the core domain types of the conformance
// harness: engine status codes, per-run execution state, test fixtures,
// and case reports. Types here depend only on the standard library so
// every layer can share them.
package entities
