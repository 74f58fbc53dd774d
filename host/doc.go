// Package host orchestrates the VM lifecycle for one run: restore a
// snapshot image into an instance bound to a fresh execution context,
// resolve exports, invoke them, and tear the instance down. The engine
// itself stays behind the ports.Engine interface.
package host
