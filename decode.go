//  Copyright (c) 2014 Couchbase, Inc.

package cbor

import (
	"io"
	"math"
	"unicode/utf8"
)

// Decoder reads successive top-level CBOR values from a byte source,
// the spec.md §6 "byte source" capability being any io.Reader. A Decoder
// owns no state beyond its source and Options, and per spec.md §5 is safe
// to use concurrently with any other Decoder or Encoder over distinct
// readers — there is no shared mutable state to race on.
type Decoder struct {
	r    io.Reader
	opts *Options
}

// NewDecoder returns a Decoder reading from r. A nil opts uses
// DefaultOptions().
func NewDecoder(r io.Reader, opts *Options) *Decoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Decoder{r: r, opts: opts}
}

// Decode reads exactly one top-level CBOR value (spec.md §4.3). If the
// source is empty before any byte is read and Options.HasEOF is set, it
// returns (Options.EOF, nil) instead of failing; otherwise an empty source
// aborts with KindUnderflow.
func Decode(r io.Reader, opts *Options) (Value, error) {
	return NewDecoder(r, opts).Decode()
}

func (d *Decoder) Decode() (Value, error) {
	hdr := make([]byte, 1)
	n, err := io.ReadFull(d.r, hdr)
	if n == 0 && err != nil {
		if d.opts.HasEOF {
			return d.opts.EOF, nil
		}
		return d.fail(KindUnderflow, "empty source")
	} else if err != nil {
		return d.fail(KindUnderflow, "reading header byte: %v", err)
	}
	return d.decodeValue(hdr[0], 0)
}

// fail routes kind/message through the configured error handler: a
// substitution continues the call with the replacement value, anything
// else unwinds with an *Error. This is the decode-side half of spec.md
// §4.6/§7's injectable handler.
func (d *Decoder) fail(kind Kind, format string, args ...interface{}) (Value, error) {
	e := newError(kind, format, args...)
	d.opts.logger().Errorf("gocbor decode: %s\n", e.Error())
	if v, ok := d.opts.errorHandler()(kind, e.Message); ok {
		return v, nil
	}
	return nil, e
}

func (d *Decoder) readFull(n int64) ([]byte, error) {
	if d.opts.MaxLength > 0 && n > d.opts.MaxLength {
		_, err := d.fail(KindUnderflow, "declared length %d exceeds max-length %d", n, d.opts.MaxLength)
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		_, err2 := d.fail(KindUnderflow, "reading %d bytes: %v", n, err)
		return nil, err2
	}
	return buf, nil
}

func (d *Decoder) readByte() (byte, error) {
	b, err := d.readFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readArgument reads the 0/1/2/4/8 trailing bytes info calls for and
// returns the unsigned argument (spec.md §4.1).
func (d *Decoder) readArgument(info byte) (uint64, error) {
	switch {
	case info <= infoImmediateMax:
		return uint64(info), nil
	case info == info1Byte:
		b, err := d.readFull(1)
		if err != nil {
			return 0, err
		}
		return uint64(b[0]), nil
	case info == info2Byte:
		b, err := d.readFull(2)
		if err != nil {
			return 0, err
		}
		return uint64(b[0])<<8 | uint64(b[1]), nil
	case info == info4Byte:
		b, err := d.readFull(4)
		if err != nil {
			return 0, err
		}
		return uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3]), nil
	default: // info8Byte
		b, err := d.readFull(8)
		if err != nil {
			return 0, err
		}
		var n uint64
		for _, c := range b {
			n = n<<8 | uint64(c)
		}
		return n, nil
	}
}

func (d *Decoder) decodeValue(hdr byte, depth int) (Value, error) {
	if d.opts.MaxDepth > 0 && depth > d.opts.MaxDepth {
		return d.fail(KindIllegalStream, "nesting exceeds max-depth %d", d.opts.MaxDepth)
	}

	m, info := splitHeader(hdr)

	if isReservedInfo(info) {
		return d.fail(KindReservedLength, "reserved info %d in header 0x%02x", info, hdr)
	}

	if info == infoIndefinite {
		return d.decodeIndefinite(m, depth)
	}

	switch m {
	case majorUint:
		return d.decodeUint(info)
	case majorNegInt:
		return d.decodeNegInt(info)
	case majorBytes:
		n, err := d.readArgument(info)
		if err != nil {
			return nil, err
		}
		return d.readFull(int64(n))
	case majorText:
		n, err := d.readArgument(info)
		if err != nil {
			return nil, err
		}
		raw, err := d.readFull(int64(n))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(raw) {
			return d.fail(KindInvalidUTF8, "text string is not valid UTF-8")
		}
		return string(raw), nil
	case majorArray:
		n, err := d.readArgument(info)
		if err != nil {
			return nil, err
		}
		return d.decodeArray(int64(n), depth)
	case majorMap:
		n, err := d.readArgument(info)
		if err != nil {
			return nil, err
		}
		return d.decodeMap(int64(n), depth)
	case majorTag:
		n, err := d.readArgument(info)
		if err != nil {
			return nil, err
		}
		return d.decodeTag(n, depth)
	default: // majorSimple
		return d.decodeSimple(info)
	}
}

func (d *Decoder) decodeUint(info byte) (Value, error) {
	n, err := d.readArgument(info)
	if err != nil {
		return nil, err
	}
	// n is already a native uint64, which covers CBOR major-0's entire
	// wire range (spec.md §9's open question: no big.Int promotion is
	// needed to hold an 8-byte unsigned argument, unlike a target whose
	// native integer is signed 64-bit).
	return n, nil
}

func (d *Decoder) decodeNegInt(info byte) (Value, error) {
	n, err := d.readArgument(info)
	if err != nil {
		return nil, err
	}
	// value = -1 - n. n fits in uint64, so the result only overflows
	// int64's range when n > 2^63-1; promote to *big.Int in that case.
	if n <= 1<<63-1 {
		return -1 - int64(n), nil
	}
	u, _ := toBigInt(n)
	neg := newNegBigFromArgument(u)
	return narrowSigned(neg), nil
}

func (d *Decoder) decodeArray(n int64, depth int) (Value, error) {
	if d.opts.MaxLength > 0 && n > d.opts.MaxLength {
		return d.fail(KindUnderflow, "array length %d exceeds max-length %d", n, d.opts.MaxLength)
	}
	items := make([]Value, 0, clampPrealloc(n))
	for i := int64(0); i < n; i++ {
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue(b, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (d *Decoder) decodeMap(n int64, depth int) (Value, error) {
	if d.opts.MaxLength > 0 && n > d.opts.MaxLength {
		return d.fail(KindUnderflow, "map length %d exceeds max-length %d", n, d.opts.MaxLength)
	}
	m := NewMap()
	for i := int64(0); i < n; i++ {
		kb, err := d.readByte()
		if err != nil {
			return nil, err
		}
		key, err := d.decodeValue(kb, depth+1)
		if err != nil {
			return nil, err
		}
		vb, err := d.readByte()
		if err != nil {
			return nil, err
		}
		val, err := d.decodeValue(vb, depth+1)
		if err != nil {
			return nil, err
		}
		if err := d.insertMapKey(m, key, val); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (d *Decoder) insertMapKey(m *Map, key, val Value) error {
	if _, exists := m.Get(key); exists {
		if d.opts.StrictKeys {
			if _, err := d.fail(KindDuplicateMapKey, "duplicate map key %#v", key); err != nil {
				return err
			}
			// substitution: fall through and overwrite, matching how
			// every other substitution resumes as if the construct had
			// succeeded.
		}
	}
	m.Set(key, val)
	return nil
}

func (d *Decoder) decodeTag(tag uint64, depth int) (Value, error) {
	b, err := d.readByte()
	if err != nil {
		return nil, err
	}
	inner, err := d.decodeValue(b, depth+1)
	if err != nil {
		return nil, err
	}
	if h, ok := d.opts.registry().lookupRead(tag); ok {
		v, err := h(tag, inner)
		if err != nil {
			if cerr, ok := err.(*Error); ok {
				return d.fail(cerr.Kind, cerr.Message)
			}
			return d.fail(KindMalformedTagPayload, "tag %d handler failed: %v", tag, err)
		}
		return v, nil
	}
	// Unknown tag is informational (spec.md §4.5): notify the handler but
	// always keep the pass-through *Tag unless the handler substitutes a
	// non-nil value.
	d.opts.logger().Tracef("gocbor decode: unregistered tag %d, passing through\n", tag)
	if v, ok := d.opts.errorHandler()(KindUnknownTag, sprintfUnknownTag(tag)); ok && v != nil {
		return v, nil
	}
	return &Tag{Number: tag, Value: inner}, nil
}

func sprintfUnknownTag(tag uint64) string {
	return newError(KindUnknownTag, "unregistered tag %d", tag).Message
}

func (d *Decoder) decodeSimple(info byte) (Value, error) {
	switch info {
	case simpleFalse:
		return false, nil
	case simpleTrue:
		return true, nil
	case simpleNull:
		return nil, nil
	case simpleUndefined:
		return Undefined{}, nil
	case simpleByte:
		code, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if code >= 20 && code <= 31 {
			return d.fail(KindReservedSimple, "simple-value extension byte %d is reserved", code)
		}
		return Simple{Code: code}, nil
	case simpleFloat16:
		b, err := d.readFull(2)
		if err != nil {
			return nil, err
		}
		h := uint16(b[0])<<8 | uint16(b[1])
		return float16ToFloat64(h), nil
	case simpleFloat32:
		b, err := d.readFull(4)
		if err != nil {
			return nil, err
		}
		bits := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
		return float64(math.Float32frombits(bits)), nil
	case simpleFloat64:
		b, err := d.readFull(8)
		if err != nil {
			return nil, err
		}
		var bits uint64
		for _, c := range b {
			bits = bits<<8 | uint64(c)
		}
		return math.Float64frombits(bits), nil
	case simpleBreak:
		return d.fail(KindUnexpectedBreak, "break encountered outside a streaming container")
	default:
		// info in 0..19 or the unreachable reserved range already
		// filtered by decodeValue: a bare simple-type codepoint.
		return Simple{Code: info}, nil
	}
}

// decodeIndefinite handles the four streaming shapes of spec.md §4.3 step 3.
func (d *Decoder) decodeIndefinite(m major, depth int) (Value, error) {
	switch m {
	case majorBytes, majorText:
		return d.decodeStreamingString(m)
	case majorArray:
		return d.decodeStreamingArray(depth)
	case majorMap:
		return d.decodeStreamingMap(depth)
	case majorTag:
		return d.fail(KindIllegalStream, "tag cannot have indefinite length")
	default: // majorSimple with info==31 is the break marker itself
		return d.fail(KindUnexpectedBreak, "break encountered outside a streaming container")
	}
}

func (d *Decoder) decodeStreamingString(container major) (Value, error) {
	var bytesOut []byte
	var textOut []byte
	isText := container == majorText
	for {
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if b == breakByte {
			if isText {
				if !utf8.Valid(textOut) {
					return d.fail(KindInvalidUTF8, "streamed text string is not valid UTF-8")
				}
				return string(textOut), nil
			}
			if bytesOut == nil {
				bytesOut = []byte{}
			}
			return bytesOut, nil
		}
		cm, cinfo := splitHeader(b)
		if cm != container {
			return d.fail(KindIllegalChunk, "streaming chunk major type %d does not match container major type %d", cm, container)
		}
		if cinfo == infoIndefinite {
			return d.fail(KindDefiniteLengthRequired, "streaming chunk must have a definite length")
		}
		if isReservedInfo(cinfo) {
			return d.fail(KindReservedLength, "reserved info %d in streaming chunk header", cinfo)
		}
		n, err := d.readArgument(cinfo)
		if err != nil {
			return nil, err
		}
		chunk, err := d.readFull(int64(n))
		if err != nil {
			return nil, err
		}
		if isText {
			textOut = append(textOut, chunk...)
		} else {
			bytesOut = append(bytesOut, chunk...)
		}
	}
}

func (d *Decoder) decodeStreamingArray(depth int) (Value, error) {
	items := []Value{}
	for {
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if b == breakByte {
			return items, nil
		}
		v, err := d.decodeValue(b, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (d *Decoder) decodeStreamingMap(depth int) (Value, error) {
	m := NewMap()
	hasPendingKey := false
	var pendingKey Value
	for {
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if b == breakByte {
			if hasPendingKey {
				return d.fail(KindMissingMapValue, "streaming map ended with a key but no value")
			}
			return m, nil
		}
		v, err := d.decodeValue(b, depth+1)
		if err != nil {
			return nil, err
		}
		if !hasPendingKey {
			pendingKey = v
			hasPendingKey = true
			continue
		}
		if err := d.insertMapKey(m, pendingKey, v); err != nil {
			return nil, err
		}
		hasPendingKey = false
	}
}

func clampPrealloc(n int64) int64 {
	const cap = 4096
	if n > cap {
		return cap
	}
	return n
}
