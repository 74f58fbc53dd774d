package entities

import (
	"strings"
	"testing"
)

func TestStatusOK(t *testing.T) {
	if !StatusSuccess.OK() {
		t.Error("StatusSuccess.OK() = false, want true")
	}
	if StatusUnresolvedImport.OK() {
		t.Error("StatusUnresolvedImport.OK() = true, want false")
	}
}

func TestStatusStringKnown(t *testing.T) {
	if got := StatusUnresolvedImport.String(); !strings.Contains(got, "unresolved import") {
		t.Errorf("StatusUnresolvedImport.String() = %q, want an unresolved import description", got)
	}
}

func TestStatusStringUnknownFallsBackToCode(t *testing.T) {
	if got := Status(999).String(); !strings.Contains(got, "999") {
		t.Errorf("Status(999).String() = %q, want the raw code", got)
	}
}
