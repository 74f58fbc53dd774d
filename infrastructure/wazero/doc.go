// Package wazero adapts a WebAssembly build of the VM engine to the
// ports.Engine interface using the wazero runtime.
//
// The engine build is opaque bytecode to this package; the contract is
// its export/import surface:
//
// Exports consumed by the adapter:
//
//   - allocate(size i32) -> i32: reserve guest memory for host writes
//   - mvm_restore(ptr, len i32) -> i64: packed status<<32 | vm handle
//   - mvm_resolveExport(vm, exportID i32) -> i64: packed status<<32 | value
//   - mvm_call(vm, fn, argsPtr, argCount i32) -> i64: packed status<<32 | result
//   - mvm_toStringUtf8(vm, value i32) -> i64: packed ptr<<32 | len
//   - mvm_toBool(vm, value i32) -> i32
//   - mvm_runGC(vm i32)
//   - mvm_free(vm i32)
//
// Imports provided by the adapter under the "mvm_host" module:
//
//   - resolve_import(id i32) -> i32: 1 if the host supplies the import
//   - invoke_host(vm, id, resultPtr, argsPtr, argCount i32) -> i32 status
//
// Values cross the boundary as 32-bit handles in little-endian 4-byte
// slots; multi-value returns use the packed-i64 convention (upper 32
// bits first component, lower 32 bits second).
package wazero
