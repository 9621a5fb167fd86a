package cbor

import "testing"

func TestErrorMessage(t *testing.T) {
	err := newError(KindUnderflow, "reading %d bytes: %s", 4, "short read")
	want := "gocbor.underflow: reading 4 bytes: short read"
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAbortHandlerNeverSubstitutes(t *testing.T) {
	v, ok := AbortHandler(KindUnderflow, "boom")
	if ok || v != nil {
		t.Errorf("expected AbortHandler to decline, got (%v, %v)", v, ok)
	}
}
