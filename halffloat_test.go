package cbor

import (
	"math"
	"testing"
)

func TestFloat16ToFloat64(t *testing.T) {
	cases := []struct {
		h    uint16
		want float64
	}{
		{0x0000, 0.0},
		{0x8000, 0.0}, // -0, compares equal to 0.0
		{0x3c00, 1.0},
		{0xc000, -2.0},
	}
	for _, c := range cases {
		if got := float16ToFloat64(c.h); got != c.want {
			t.Errorf("float16ToFloat64(0x%04x): expected %v, got %v", c.h, c.want, got)
		}
	}
	if got := float16ToFloat64(0x7c00); !math.IsInf(got, 1) {
		t.Errorf("expected 0x7c00 to decode to +Inf, got %v", got)
	}
}

func TestFloat16ToFloat64Subnormal(t *testing.T) {
	// smallest positive subnormal half: mantissa=1, value = 2^-24
	got := float16ToFloat64(0x0001)
	want := 1.0 / (1 << 24)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFloat64ToFloat16ExactRoundTrip(t *testing.T) {
	values := []float64{0.0, 1.0, -2.0, 0.5, 65504.0, 1.0 / (1 << 24)}
	for _, f := range values {
		h, ok := float64ToFloat16Exact(f)
		if !ok {
			t.Errorf("expected %v to narrow exactly to float16", f)
			continue
		}
		if got := float16ToFloat64(h); got != f {
			t.Errorf("round trip of %v: got %v", f, got)
		}
	}
}

func TestFloat64ToFloat16ExactRejectsLoss(t *testing.T) {
	if _, ok := float64ToFloat16Exact(0.1); ok {
		t.Errorf("expected 0.1 to not narrow exactly to float16")
	}
	if _, ok := float64ToFloat16Exact(100000.0); ok {
		t.Errorf("expected 100000.0 (out of half range) to not narrow")
	}
}

func TestFloat64ToFloat32Exact(t *testing.T) {
	if _, ok := float64ToFloat32Exact(1.0); !ok {
		t.Errorf("expected 1.0 to narrow exactly to float32")
	}
	if _, ok := float64ToFloat32Exact(0.1); ok {
		t.Errorf("expected 0.1 to not narrow exactly to float32")
	}
}
