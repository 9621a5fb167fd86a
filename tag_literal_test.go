package cbor

import "testing"

func TestLiteralRoundTrip(t *testing.T) {
	r := NewTagRegistry()
	registerLiteralHandlers(r)

	lit := Literal{TagName: "uuid", Form: "f47ac10b-58cc-4372-a567-0e02b2c3d479"}
	h, _ := r.lookupWrite(lit)
	tag, inner, ok := h(lit)
	if !ok || tag != tagGenericObject {
		t.Fatalf("expected tag %d, got %d", tagGenericObject, tag)
	}
	readH, _ := r.lookupRead(tagGenericObject)
	v, err := readH(tagGenericObject, inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.(Literal)
	if !ok || got != lit {
		t.Errorf("expected %v, got %v", lit, v)
	}
}

func TestIdentifierKeyword(t *testing.T) {
	r := NewTagRegistry()
	registerIdentifierHandlers(r)

	kw := Identifier{Name: "foo", IsKeyword: true}
	h, _ := r.lookupWrite(kw)
	_, inner, _ := h(kw)
	if inner != ":foo" {
		t.Errorf("expected keyword to encode with a leading colon, got %v", inner)
	}

	readH, _ := r.lookupRead(tagIdentifier)
	v, err := readH(tagIdentifier, ":foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.(Identifier)
	if !ok || got != kw {
		t.Errorf("expected %v, got %v", kw, v)
	}
}

func TestIdentifierSymbol(t *testing.T) {
	r := NewTagRegistry()
	registerIdentifierHandlers(r)
	readH, _ := r.lookupRead(tagIdentifier)
	v, err := readH(tagIdentifier, "bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.(Identifier)
	if !ok || got.IsKeyword || got.Name != "bar" {
		t.Errorf("expected a plain symbol %q, got %v", "bar", v)
	}
}
