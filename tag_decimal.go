package cbor

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Tag 4: decimal fraction, inner form [exponent, mantissa] (spec.md §4.5).
// shopspring/decimal already stores a value as coefficient * 10^exponent
// with exactly RFC 7049's sign convention, so the CBOR exponent and
// decimal.Decimal's own Exponent() agree directly — no extra negation is
// needed here even though scale (digits-after-the-point, the more common
// decimal-library convention) is -exponent.
const tagDecimalFraction uint64 = 4

func registerDecimalHandlers(r *TagRegistry) {
	r.RegisterRead(tagDecimalFraction, func(_ uint64, inner Value) (Value, error) {
		parts, ok := inner.([]Value)
		if !ok || len(parts) != 2 {
			return nil, newError(KindMalformedTagPayload, "tag 4 payload must be a 2-element array, got %T", inner)
		}
		exp, ok := toInt64(parts[0])
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 4 exponent must be an integer, got %T", parts[0])
		}
		mantissa, ok := toBigInt(parts[1])
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 4 mantissa must be an integer, got %T", parts[1])
		}
		return decimal.NewFromBigInt(mantissa, int32(exp)), nil
	})

	r.RegisterWrite(isDecimal, func(v Value) (uint64, Value, bool) {
		d := v.(decimal.Decimal)
		exp := int64(d.Exponent())
		mantissa := new(big.Int).Set(d.Coefficient())
		return tagDecimalFraction, []Value{exp, mantissa}, true
	})
}

func isDecimal(v Value) bool {
	_, ok := v.(decimal.Decimal)
	return ok
}

func toInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case uint64:
		if n > 1<<62 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case *big.Int:
		if n.IsInt64() {
			return n.Int64(), true
		}
	}
	return 0, false
}
