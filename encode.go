//  Copyright (c) 2014 Couchbase, Inc.

package cbor

import (
	"io"
	"math"
	"math/big"
	"sort"
)

// Encoder writes successive top-level CBOR values to a byte sink (any
// io.Writer). Like Decoder, it owns no state beyond its sink and Options
// and is safe to use concurrently with other Encoders/Decoders over
// distinct writers (spec.md §5).
type Encoder struct {
	w       io.Writer
	opts    *Options
	written int
}

// NewEncoder returns an Encoder writing to w. A nil opts uses
// DefaultOptions().
func NewEncoder(w io.Writer, opts *Options) *Encoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Encoder{w: w, opts: opts}
}

// Encode writes v to the sink and returns the number of bytes written
// (spec.md §6's `encode(sink, value, options?) -> bytes-written`).
func Encode(w io.Writer, v Value, opts *Options) (int, error) {
	return NewEncoder(w, opts).Encode(v)
}

func (e *Encoder) Encode(v Value) (int, error) {
	e.written = 0
	if err := e.encodeValue(v); err != nil {
		return e.written, err
	}
	return e.written, nil
}

func (e *Encoder) write(buf []byte) error {
	n, err := e.w.Write(buf)
	e.written += n
	return err
}

// fail routes an encode-time Kind through the configured Handler. A
// substitution re-enters encodeValue with the replacement value; anything
// else aborts with an *Error, mirroring Decoder.fail.
func (e *Encoder) fail(kind Kind, format string, args ...interface{}) error {
	err := newError(kind, format, args...)
	e.opts.logger().Errorf("gocbor encode: %s\n", err.Error())
	if v, ok := e.opts.errorHandler()(kind, err.Message); ok {
		return e.encodeValue(v)
	}
	return err
}

func (e *Encoder) encodeValue(v Value) error {
	for _, we := range e.opts.registry().writers {
		if !we.predicate(v) {
			continue
		}
		if tag, inner, ok := we.handler(v); ok {
			if err := e.write(putArgument(nil, majorTag, tag)); err != nil {
				return err
			}
			// Re-entry terminates: every built-in handler's inner value is
			// a byte string, a text string, or an array of the value's own
			// parts. Those parts may be claimed again (a decimal's or
			// rational's *big.Int goes through the bignum handler), but the
			// bignum handler's inner value is a byte string, which no
			// built-in handler claims.
			return e.encodeValue(inner)
		}
	}

	switch val := v.(type) {
	case nil:
		return e.write([]byte{header(majorSimple, simpleNull)})
	case Undefined:
		return e.write([]byte{header(majorSimple, simpleUndefined)})
	case bool:
		if val {
			return e.write([]byte{header(majorSimple, simpleTrue)})
		}
		return e.write([]byte{header(majorSimple, simpleFalse)})
	case Simple:
		return e.encodeSimple(val)
	case uint64:
		return e.write(putArgument(nil, majorUint, val))
	case uint:
		return e.write(putArgument(nil, majorUint, uint64(val)))
	case uint32:
		return e.write(putArgument(nil, majorUint, uint64(val)))
	case int:
		return e.encodeInt(int64(val))
	case int64:
		return e.encodeInt(val)
	case int32:
		return e.encodeInt(int64(val))
	case *big.Int:
		return e.encodeBigIntFallback(val)
	case []byte:
		return e.write(append(putArgument(nil, majorBytes, uint64(len(val))), val...))
	case string:
		return e.write(append(putArgument(nil, majorText, uint64(len(val))), []byte(val)...))
	case float32:
		return e.encodeFloat(float64(val))
	case float64:
		return e.encodeFloat(val)
	case []Value:
		return e.encodeArray(val)
	case *Map:
		return e.encodeMap(val)
	case *Tag:
		if err := e.write(putArgument(nil, majorTag, val.Number)); err != nil {
			return err
		}
		return e.encodeValue(val.Value)
	default:
		return e.fail(KindUnknownValue, "no shape or tag handler matches %T", v)
	}
}

func (e *Encoder) encodeSimple(s Simple) error {
	if s.Code <= 19 {
		return e.write([]byte{header(majorSimple, s.Code)})
	}
	if s.Code >= 32 {
		return e.write([]byte{header(majorSimple, simpleByte), s.Code})
	}
	return e.fail(KindReservedSimple, "simple code %d is reserved", s.Code)
}

func (e *Encoder) encodeInt(n int64) error {
	if n >= 0 {
		return e.write(putArgument(nil, majorUint, uint64(n)))
	}
	arg := uint64(-(n + 1))
	return e.write(putArgument(nil, majorNegInt, arg))
}

// encodeBigIntFallback is reached only when v is a *big.Int and no write
// handler claimed it (e.g. a caller-supplied Options.Registry without the
// bignum handler). It narrows to a plain integer when possible and
// otherwise fails per spec.md §4.2 — with the default registry this path
// never runs, since the bignum handler always claims *big.Int first.
func (e *Encoder) encodeBigIntFallback(v *big.Int) error {
	if v.IsUint64() {
		return e.write(putArgument(nil, majorUint, v.Uint64()))
	}
	if v.IsInt64() {
		return e.encodeInt(v.Int64())
	}
	return e.fail(KindUnrepresentableInteger, "big.Int %s has no tag handler registered", v.String())
}

func (e *Encoder) encodeFloat(f float64) error {
	if h, ok := float64ToFloat16Exact(f); ok {
		return e.write([]byte{header(majorSimple, simpleFloat16), byte(h >> 8), byte(h)})
	}
	if f32, ok := float64ToFloat32Exact(f); ok {
		bits := math.Float32bits(f32)
		return e.write([]byte{
			header(majorSimple, simpleFloat32),
			byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits),
		})
	}
	bits := math.Float64bits(f)
	buf := make([]byte, 9)
	buf[0] = header(majorSimple, simpleFloat64)
	for i := 0; i < 8; i++ {
		buf[8-i] = byte(bits)
		bits >>= 8
	}
	return e.write(buf)
}

func (e *Encoder) encodeArray(items []Value) error {
	if err := e.write(putArgument(nil, majorArray, uint64(len(items)))); err != nil {
		return err
	}
	for _, item := range items {
		if err := e.encodeValue(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMap(m *Map) error {
	entries := m.Entries()
	if err := e.write(putArgument(nil, majorMap, uint64(len(entries)))); err != nil {
		return err
	}
	if !e.opts.Canonical {
		for _, ent := range entries {
			if err := e.encodeValue(ent.Key); err != nil {
				return err
			}
			if err := e.encodeValue(ent.Value); err != nil {
				return err
			}
		}
		return nil
	}

	// Canonical map key ordering (spec.md §4.2): each entry is encoded
	// independently into (key-bytes, value-bytes), then the pairs are
	// sorted by ascending key length, then lexicographic key bytes.
	type pair struct {
		keyBytes   []byte
		valueBytes []byte
	}
	pairs := make([]pair, len(entries))
	for i, ent := range entries {
		kbuf := &bufWriter{}
		ke := NewEncoder(kbuf, e.opts)
		if err := ke.encodeValue(ent.Key); err != nil {
			return err
		}
		vbuf := &bufWriter{}
		ve := NewEncoder(vbuf, e.opts)
		if err := ve.encodeValue(ent.Value); err != nil {
			return err
		}
		pairs[i] = pair{keyBytes: kbuf.buf, valueBytes: vbuf.buf}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if len(pairs[i].keyBytes) != len(pairs[j].keyBytes) {
			return len(pairs[i].keyBytes) < len(pairs[j].keyBytes)
		}
		return string(pairs[i].keyBytes) < string(pairs[j].keyBytes)
	})
	for _, p := range pairs {
		if err := e.write(p.keyBytes); err != nil {
			return err
		}
		if err := e.write(p.valueBytes); err != nil {
			return err
		}
	}
	return nil
}

// bufWriter is a minimal io.Writer accumulating into an in-memory slice,
// used to pre-encode a map key/value pair for canonical sorting without
// depending on bytes.Buffer's read-side API.
type bufWriter struct {
	buf []byte
}

func (b *bufWriter) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}
