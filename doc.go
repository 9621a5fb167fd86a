// Package cbor implements RFC 7049 Concise Binary Object Representation:
// a decoder and encoder for CBOR's binary data model, plus an extensible
// tag registry.
//
// values, are represented with native Go types wherever one exists
// (uint64, int64, []byte, string, []Value, float64) and the wrapper types
// Undefined, Simple and Tag where none does. See value.go for the full
// carrier table.
//
// tags, extend the data model past the RFC's own built-ins. The registry
// (registry.go) ships positive/negative bignums (2/3), decimal fractions
// (4), generic tagged literals (27), rationals (30) and identifiers (39)
// by default; RegisterGzipTag/RegisterLzwTag add two more on request.
//
// canonical encoding, per §4.2 of the RFC, is the default: shortest
// argument widths, map keys sorted by (length, bytes), and floats
// narrowed to the smallest width that round-trips exactly. Turn it off
// with Options.WithCanonical(false) to keep map insertion order; argument
// widths and float narrowing do not change with it.
//
// usage:
//
//		opts := cbor.DefaultOptions()
//		n, err := cbor.Encode(w, value, opts)
//		v, err := cbor.Decode(r, opts)
package cbor
