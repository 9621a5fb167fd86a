package cbor

import "math/big"

// Tags 2 and 3: positive/negative bignums (spec.md §4.5). The inner form is
// always a byte string holding the big-endian unsigned magnitude; tag 3's
// decoded value is -1-U, per the RFC's two's-complement-ish negative
// bignum rule.
const (
	tagPosBignum uint64 = 2
	tagNegBignum uint64 = 3
)

func registerBignumHandlers(r *TagRegistry) {
	r.RegisterRead(tagPosBignum, func(_ uint64, inner Value) (Value, error) {
		raw, ok := inner.([]byte)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 2 payload must be a byte string, got %T", inner)
		}
		u := new(big.Int).SetBytes(raw)
		return narrowUnsigned(u), nil
	})
	r.RegisterRead(tagNegBignum, func(_ uint64, inner Value) (Value, error) {
		raw, ok := inner.([]byte)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 3 payload must be a byte string, got %T", inner)
		}
		u := new(big.Int).SetBytes(raw)
		// value = -1 - U
		v := new(big.Int).Sub(big.NewInt(-1), u)
		return narrowSigned(v), nil
	})

	r.RegisterWrite(isBigInt, func(v Value) (uint64, Value, bool) {
		n := v.(*big.Int)
		if n.Sign() >= 0 {
			return tagPosBignum, n.Bytes(), true
		}
		// U = -1 - n
		u := new(big.Int).Sub(big.NewInt(-1), n)
		return tagNegBignum, u.Bytes(), true
	})
}

func isBigInt(v Value) bool {
	_, ok := v.(*big.Int)
	return ok
}

// narrowUnsigned returns the narrowest carrier for a non-negative
// arbitrary-precision integer, per spec.md §3's narrowest-carrier
// invariant: uint64 when it fits, else *big.Int.
func narrowUnsigned(u *big.Int) Value {
	if u.IsUint64() {
		return u.Uint64()
	}
	return u
}

// narrowSigned returns the narrowest carrier for a (possibly negative)
// arbitrary-precision integer.
func narrowSigned(v *big.Int) Value {
	if v.Sign() >= 0 {
		return narrowUnsigned(v)
	}
	if v.IsInt64() {
		return v.Int64()
	}
	return v
}

// toBigInt widens any of the codec's integer carriers to *big.Int, for use
// by handlers (tag 30's rational, tag 4's mantissa) that need to do
// arithmetic regardless of which carrier the value arrived in.
func toBigInt(v Value) (*big.Int, bool) {
	switch n := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(n), true
	case int64:
		return big.NewInt(n), true
	case int:
		return big.NewInt(int64(n)), true
	case *big.Int:
		return n, true
	default:
		return nil, false
	}
}

// newNegBigFromArgument computes -1-U for a major-1 (negative integer)
// header argument U that overflowed int64, per spec.md §4.3's promotion
// rule.
func newNegBigFromArgument(u *big.Int) *big.Int {
	return new(big.Int).Sub(big.NewInt(-1), u)
}
