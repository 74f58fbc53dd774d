package entities

import "fmt"

// Status is an engine status code. The zero value is success; every other
// value describes why an engine operation or host function call failed.
// The numeric values are part of the host/engine contract and must not be
// reordered.
type Status uint16

const (
	StatusSuccess Status = iota
	StatusUnexpected
	StatusMalformedBytecode
	StatusOutOfMemory
	StatusUnresolvedImport
	StatusUnresolvedExport
	StatusInvalidArguments
	StatusHostError
)

// statusDescriptions maps status codes to the human-readable descriptions
// surfaced in failure reports. Codes without an entry render as a raw
// numeric code.
var statusDescriptions = map[Status]string{
	StatusSuccess:           "success",
	StatusUnexpected:        "unexpected engine error",
	StatusMalformedBytecode: "bytecode image is malformed",
	StatusOutOfMemory:       "engine out of memory",
	StatusUnresolvedImport:  "unresolved import: bytecode references a host function the host does not provide",
	StatusUnresolvedExport:  "unresolved export: requested export ID is not in the snapshot's export table",
	StatusInvalidArguments:  "invalid arguments",
	StatusHostError:         "host function failed",
}

// OK reports whether the status indicates success.
func (s Status) OK() bool {
	return s == StatusSuccess
}

// String returns the status description, or the raw code for statuses the
// host does not know a description for.
func (s Status) String() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return fmt.Sprintf("engine status code %d", uint16(s))
}
