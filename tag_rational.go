package cbor

import "math/big"

// Tag 30: rational, inner form [numerator, denominator] (spec.md §4.5).
// math/big.Rat is the only rational type anywhere in the retrieved example
// pack (see DESIGN.md) so it is used directly as the domain type rather
// than introducing a bespoke wrapper.
const tagRational uint64 = 30

func registerRationalHandlers(r *TagRegistry) {
	r.RegisterRead(tagRational, func(_ uint64, inner Value) (Value, error) {
		parts, ok := inner.([]Value)
		if !ok || len(parts) != 2 {
			return nil, newError(KindMalformedTagPayload, "tag 30 payload must be a 2-element array, got %T", inner)
		}
		num, ok := toBigInt(parts[0])
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 30 numerator must be an integer, got %T", parts[0])
		}
		den, ok := toBigInt(parts[1])
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 30 denominator must be an integer, got %T", parts[1])
		}
		if den.Sign() == 0 {
			return nil, newError(KindMalformedTagPayload, "tag 30 denominator must be non-zero")
		}
		return new(big.Rat).SetFrac(num, den), nil
	})

	r.RegisterWrite(isBigRat, func(v Value) (uint64, Value, bool) {
		rat := v.(*big.Rat)
		num := new(big.Int).Set(rat.Num())
		den := new(big.Int).Set(rat.Denom())
		return tagRational, []Value{num, den}, true
	})
}

func isBigRat(v Value) bool {
	_, ok := v.(*big.Rat)
	return ok
}
