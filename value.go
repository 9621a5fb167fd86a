package cbor

import (
	"bytes"
	"math/big"
)

// Value is a decoded or to-be-encoded CBOR data item. The codec represents
// CBOR's data model (spec.md §3) with native Go types wherever one exists,
// and the wrapper types below where it doesn't:
//
//	unsigned integer   uint64, or *big.Int for magnitudes that overflow it
//	negative integer    int64, or *big.Int for magnitudes that overflow it
//	byte string          []byte
//	text string           string
//	array               []Value
//	map                  *Map
//	tagged value          *Tag  (only for tags with no registered handler)
//	simple value          bool, nil (null), Undefined, or Simple
//	floating point        float64
//
// Registered tag handlers (registry.go) additionally accept and produce
// *big.Int, *big.Rat, decimal.Decimal, Identifier and Literal directly; the
// wire-level *Tag wrapper only ever surfaces for tags nobody registered a
// handler for.
type Value = interface{}

// Undefined is the CBOR "undefined" simple value, distinct from null.
type Undefined struct{}

// Simple is an opaque simple-type code in [0,19] or [32,255] that the codec
// has no built-in meaning for.
type Simple struct {
	Code byte
}

// Tag is a tagged value for which no read handler is registered; the tag
// number and inner value are preserved verbatim so callers can inspect or
// re-encode them.
type Tag struct {
	Number uint64
	Value  Value
}

// MapEntry is one key/value pair of a Map, in insertion order.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is CBOR's map value: an ordered sequence of key/value pairs with
// unique keys. Insertion order is preserved for round-tripping; canonical
// encoding re-sorts entries per §4.2 without mutating the Map itself.
type Map struct {
	entries []MapEntry
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// Set inserts a new key, or updates the value of an existing one in place.
// It reports whether the key was already present.
func (m *Map) Set(key, value Value) bool {
	for i := range m.entries {
		if valueEqual(m.entries[i].Key, key) {
			m.entries[i].Value = value
			return true
		}
	}
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
	return false
}

// Get looks up a key by CBOR-level equality.
func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.entries {
		if valueEqual(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order. The slice is owned by the
// caller; mutating it does not affect the Map.
func (m *Map) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// valueEqual implements map-key equality: integers compare by value across
// their uint64/int64/*big.Int carriers, byte/text strings compare by
// content, and nil, bool, Undefined and Simple compare by value. float64
// keys compare with Go's == (so 0.0 equals -0.0 and NaN equals nothing).
// Arrays, maps, tagged values and every other type never compare equal,
// so duplicates among such keys are not detected.
func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case uint64:
		return intEqual(av, 0, false, b)
	case int64:
		if av >= 0 {
			return intEqual(uint64(av), 0, false, b)
		}
		return intEqual(0, av, true, b)
	case *big.Int:
		return bigIntEqual(av, b)
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Simple:
		bv, ok := b.(Simple)
		return ok && av.Code == bv.Code
	default:
		return false
	}
}

func intEqual(u uint64, s int64, negative bool, other Value) bool {
	switch ov := other.(type) {
	case uint64:
		return !negative && u == ov
	case int64:
		if negative {
			return ov == s
		}
		return ov >= 0 && uint64(ov) == u
	case *big.Int:
		if negative {
			return ov.IsInt64() && ov.Int64() == s
		}
		return ov.IsUint64() && ov.Uint64() == u
	}
	return false
}

func bigIntEqual(v *big.Int, other Value) bool {
	switch ov := other.(type) {
	case *big.Int:
		return v.Cmp(ov) == 0
	case uint64:
		return v.IsUint64() && v.Uint64() == ov
	case int64:
		return v.IsInt64() && v.Int64() == ov
	}
	return false
}
