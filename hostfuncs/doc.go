// Package hostfuncs provides the host function registry and the built-in
// host functions the conformance snapshots import (print, assert).
// Implementations here have NO engine dependencies: they work against the
// ports.Instance interface, so any engine adapter can dispatch to them.
package hostfuncs
