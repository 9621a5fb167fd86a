package cbor

import "strings"

// Tag 27: generic object / tagged literal, inner form [tag-name, form]
// (spec.md §4.5) — a language-independent way to carry a domain-tagged
// literal (e.g. a Clojure #inst or #uuid reader-tag) through CBOR.
const tagGenericObject uint64 = 27

// Literal is the domain type tag 27 round-trips: a named tag plus its
// carried form.
type Literal struct {
	TagName string
	Form    Value
}

func registerLiteralHandlers(r *TagRegistry) {
	r.RegisterRead(tagGenericObject, func(_ uint64, inner Value) (Value, error) {
		parts, ok := inner.([]Value)
		if !ok || len(parts) != 2 {
			return nil, newError(KindMalformedTagPayload, "tag 27 payload must be a 2-element array, got %T", inner)
		}
		name, ok := parts[0].(string)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 27 tag-name must be a text string, got %T", parts[0])
		}
		return Literal{TagName: name, Form: parts[1]}, nil
	})

	r.RegisterWrite(isLiteral, func(v Value) (uint64, Value, bool) {
		l := v.(Literal)
		return tagGenericObject, []Value{l.TagName, l.Form}, true
	})
}

func isLiteral(v Value) bool {
	_, ok := v.(Literal)
	return ok
}

// Tag 39: identifier — a symbol or, when the inner string starts with
// ":", a keyword (spec.md §4.5).
const tagIdentifier uint64 = 39

// Identifier is the domain type tag 39 round-trips.
type Identifier struct {
	Name      string
	IsKeyword bool
}

func registerIdentifierHandlers(r *TagRegistry) {
	r.RegisterRead(tagIdentifier, func(_ uint64, inner Value) (Value, error) {
		s, ok := inner.(string)
		if !ok {
			return nil, newError(KindMalformedTagPayload, "tag 39 payload must be a text string, got %T", inner)
		}
		if strings.HasPrefix(s, ":") {
			return Identifier{Name: s[1:], IsKeyword: true}, nil
		}
		return Identifier{Name: s}, nil
	})

	r.RegisterWrite(isIdentifier, func(v Value) (uint64, Value, bool) {
		id := v.(Identifier)
		if id.IsKeyword {
			return tagIdentifier, ":" + id.Name, true
		}
		return tagIdentifier, id.Name, true
	})
}

func isIdentifier(v Value) bool {
	_, ok := v.(Identifier)
	return ok
}
