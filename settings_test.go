package cbor

import "testing"

func TestOptionsFromSettings(t *testing.T) {
	s := DefaultSettings()
	s["canonical"] = false
	s["max-depth"] = 10
	opts := OptionsFromSettings(s)
	if opts.Canonical {
		t.Errorf("expected canonical=false to carry through")
	}
	if opts.MaxDepth != 10 {
		t.Errorf("expected max-depth 10, got %d", opts.MaxDepth)
	}
	if !opts.StrictKeys {
		t.Errorf("expected strict-keys to fall back to DefaultOptions' true")
	}
}

func TestOptionsFromSettingsMaxLengthInt64(t *testing.T) {
	s := DefaultSettings()
	s["max-length"] = int64(1024)
	opts := OptionsFromSettings(s)
	if opts.MaxLength != 1024 {
		t.Errorf("expected max-length 1024, got %d", opts.MaxLength)
	}
}
