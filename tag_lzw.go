//  Copyright (c) 2014 Couchbase, Inc.

package cbor

import (
	"bytes"
	"compress/lzw"
	"io"
)

// tagLzw (42) mirrors tagGzip: adapted from the teacher's tag_lzw.go,
// which keyed LZW-compressed transport payloads off the same tag number.
const tagLzw uint64 = 42

// LzwCompressed wraps a byte string so RegisterLzwTag encodes it as an
// LZW-compressed tag-42 payload instead of a plain byte string.
type LzwCompressed []byte

// RegisterLzwTag installs tag 42 on r, symmetric with RegisterGzipTag.
func RegisterLzwTag(r *TagRegistry) {
	r.RegisterRead(tagLzw, func(_ uint64, inner Value) (Value, error) {
		raw, ok := inner.([]byte)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 42 payload must be a byte string, got %T", inner)
		}
		zr := lzw.NewReader(bytes.NewReader(raw), lzw.LSB, 8 /*litWidth*/)
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, newError(KindMalformedTagPayload, "tag 42 payload failed to decompress: %v", err)
		}
		return out, nil
	})

	r.RegisterWrite(isLzwCompressed, func(v Value) (uint64, Value, bool) {
		payload := v.(LzwCompressed)
		var buf bytes.Buffer
		zw := lzw.NewWriter(&buf, lzw.LSB, 8 /*litWidth*/)
		_, _ = zw.Write(payload)
		_ = zw.Close()
		return tagLzw, buf.Bytes(), true
	})
}

func isLzwCompressed(v Value) bool {
	_, ok := v.(LzwCompressed)
	return ok
}
