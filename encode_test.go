package cbor

import (
	"bytes"
	"math/big"
	"testing"
)

func encodeValue(t *testing.T, v Value, opts *Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Encode(&buf, v, opts); err != nil {
		t.Fatalf("encode %v: unexpected error: %v", v, err)
	}
	return buf.Bytes()
}

func TestEncodeIntegers(t *testing.T) {
	cases := []struct {
		in   Value
		want []byte
	}{
		{uint64(0), []byte{0x00}},
		{uint64(23), []byte{0x17}},
		{uint64(24), []byte{0x18, 0x18}},
		{uint64(1000), []byte{0x19, 0x03, 0xe8}},
		{int64(-1), []byte{0x20}},
	}
	for _, c := range cases {
		got := encodeValue(t, c.in, nil)
		if !bytes.Equal(got, c.want) {
			t.Errorf("encode %v: expected %x, got %x", c.in, c.want, got)
		}
	}
}

func TestEncodeMinInt64(t *testing.T) {
	got := encodeValue(t, int64(-9223372036854775808), nil)
	want := []byte{0x3b, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestEncodeByteAndTextStrings(t *testing.T) {
	if got := encodeValue(t, []byte{}, nil); !bytes.Equal(got, []byte{0x40}) {
		t.Errorf("expected 0x40, got %x", got)
	}
	if got := encodeValue(t, []byte{1, 2, 3, 4}, nil); !bytes.Equal(got, []byte{0x44, 1, 2, 3, 4}) {
		t.Errorf("expected 0x4401020304, got %x", got)
	}
	if got := encodeValue(t, "IETF", nil); !bytes.Equal(got, []byte{0x64, 'I', 'E', 'T', 'F'}) {
		t.Errorf(`expected 0x6449455446, got %x`, got)
	}
}

func TestEncodeArray(t *testing.T) {
	got := encodeValue(t, []Value{uint64(1), uint64(2), uint64(3)}, nil)
	want := []byte{0x83, 0x01, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestEncodeMapCanonicalKeyOrder(t *testing.T) {
	m1 := NewMap()
	m1.Set(uint64(1), uint64(2))
	m1.Set(uint64(3), uint64(4))

	m2 := NewMap()
	m2.Set(uint64(3), uint64(4))
	m2.Set(uint64(1), uint64(2))

	got1 := encodeValue(t, m1, nil)
	got2 := encodeValue(t, m2, nil)
	want := []byte{0xa2, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(got1, want) {
		t.Errorf("expected %x, got %x", want, got1)
	}
	if !bytes.Equal(got1, got2) {
		t.Errorf("expected canonical encoding to be order-independent: %x vs %x", got1, got2)
	}
}

func TestEncodeMapNonCanonicalPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(uint64(3), uint64(4))
	m.Set(uint64(1), uint64(2))
	opts := DefaultOptions().WithCanonical(false)
	got := encodeValue(t, m, opts)
	want := []byte{0xa2, 0x03, 0x04, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("expected insertion order %x, got %x", want, got)
	}
}

func TestEncodeBignumTag(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 64)
	got := encodeValue(t, n, nil)
	want := []byte{0xc2, 0x49, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestEncodeFloatNarrowsToHalfWhenExact(t *testing.T) {
	got := encodeValue(t, float64(0.0), nil)
	want := []byte{0xf9, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestEncodeFloatKeepsFullWidthWhenNotExact(t *testing.T) {
	got := encodeValue(t, 1.1, nil)
	want := []byte{0xfb, 0x3f, 0xf1, 0x99, 0x99, 0x99, 0x99, 0x99, 0x9a}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := NewMap()
	m.Set("a", uint64(1))
	m.Set("b", []Value{uint64(1), uint64(2), "three"})

	var buf bytes.Buffer
	opts := DefaultOptions()
	if _, err := Encode(&buf, m, opts); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf, opts)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rm, ok := got.(*Map)
	if !ok || rm.Len() != 2 {
		t.Fatalf("expected a 2-entry map, got %v", got)
	}
	if v, _ := rm.Get("a"); v != uint64(1) {
		t.Errorf(`expected "a":1, got %v`, v)
	}
}

func TestEncodeUnrepresentableFallsBackToHandler(t *testing.T) {
	type unknown struct{}
	called := false
	opts := DefaultOptions().WithErrorHandler(func(kind Kind, message string) (Value, bool) {
		if kind == KindUnknownValue {
			called = true
			return uint64(0), true
		}
		return nil, false
	})
	got := encodeValue(t, unknown{}, opts)
	if !called {
		t.Errorf("expected the error handler to be consulted for an unknown value type")
	}
	if !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("expected the substituted value 0 to encode as 0x00, got %x", got)
	}
}
