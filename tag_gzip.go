//  Copyright (c) 2014 Couchbase, Inc.

package cbor

import (
	"bytes"
	"compress/gzip"
	"io"
)

// tagGzip (41) is not part of the RFC's tag space and is not registered by
// DefaultRegistry; it exists to demonstrate the registry's extensibility
// with a real handler, adapted from the teacher's own tag_gzip.go, which
// used the identical tag number to compress transport payloads rather than
// CBOR byte strings.
const tagGzip uint64 = 41

// GzipCompressed wraps a byte string so RegisterGzipTag encodes it as a
// gzip-compressed tag-41 payload instead of a plain byte string.
type GzipCompressed []byte

// RegisterGzipTag installs tag 41 on r: decoding inflates the payload back
// into a byte string, encoding only fires for values wrapped in
// GzipCompressed (a plain []byte is left as an ordinary byte string).
func RegisterGzipTag(r *TagRegistry) {
	r.RegisterRead(tagGzip, func(_ uint64, inner Value) (Value, error) {
		raw, ok := inner.([]byte)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 41 payload must be a byte string, got %T", inner)
		}
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, newError(KindMalformedTagPayload, "tag 41 payload is not valid gzip: %v", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, newError(KindMalformedTagPayload, "tag 41 payload failed to inflate: %v", err)
		}
		return out, nil
	})

	r.RegisterWrite(isGzipCompressed, func(v Value) (uint64, Value, bool) {
		payload := v.(GzipCompressed)
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write(payload)
		_ = zw.Close()
		return tagGzip, buf.Bytes(), true
	})
}

func isGzipCompressed(v Value) bool {
	_, ok := v.(GzipCompressed)
	return ok
}
