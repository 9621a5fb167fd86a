package cbor

import "testing"

func TestLzwTagRoundTrip(t *testing.T) {
	r := NewTagRegistry()
	RegisterLzwTag(r)

	payload := LzwCompressed("hello hello hello hello hello")
	h, ok := r.lookupWrite(payload)
	if !ok {
		t.Fatalf("expected LzwCompressed to match the write predicate")
	}
	tag, inner, ok := h(payload)
	if !ok || tag != tagLzw {
		t.Fatalf("expected tag %d, got %d", tagLzw, tag)
	}

	readH, _ := r.lookupRead(tagLzw)
	v, err := readH(tagLzw, inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.([]byte)
	if !ok || string(got) != string(payload) {
		t.Errorf("expected %q, got %q", payload, got)
	}
}
