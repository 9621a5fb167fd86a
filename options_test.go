package cbor

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.Canonical {
		t.Errorf("expected Canonical default true")
	}
	if !opts.StrictKeys {
		t.Errorf("expected StrictKeys default true")
	}
	if opts.MaxDepth != 1000 {
		t.Errorf("expected MaxDepth 1000, got %d", opts.MaxDepth)
	}
	if opts.MaxLength != 64<<20 {
		t.Errorf("expected MaxLength 64MiB, got %d", opts.MaxLength)
	}
}

func TestWithCanonicalIsImmutable(t *testing.T) {
	base := DefaultOptions()
	narrowed := base.WithCanonical(false)
	if base.Canonical != true {
		t.Errorf("expected base Options to be unmodified by WithCanonical")
	}
	if narrowed.Canonical != false {
		t.Errorf("expected narrowed Options to have Canonical=false")
	}
}

func TestWithErrorHandlerNilFallsBackToAbort(t *testing.T) {
	opts := DefaultOptions().WithErrorHandler(nil)
	if opts.ErrorHandler == nil {
		t.Errorf("expected WithErrorHandler(nil) to install AbortHandler, got nil")
	}
	if _, ok := opts.ErrorHandler(KindUnderflow, "x"); ok {
		t.Errorf("expected the fallback handler to behave like AbortHandler")
	}
}
