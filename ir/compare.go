package ir

import "math"

// Equal reports whether a and b are structurally equal. Numbers compare by
// value, strings by decoded text, and maps, arrays and literal arguments in
// order. Layout and quoting are ignored.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return equalNumbers(a, b)
	case StringType, StringNameType:
		return a.String == b.String
	case ArrayType:
		return equalAll(a.Values, b.Values)
	case MapType:
		return equalAll(a.Fields, b.Fields) && equalAll(a.Values, b.Values)
	case LiteralType, TypedArrayType:
		return a.Name == b.Name && equalAll(a.Values, b.Values)
	}
	return false
}

func equalAll(as, bs []*Value) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func equalNumbers(a, b *Value) bool {
	if a.Number != "" && a.Number == b.Number {
		return true
	}
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if !aok || !bok {
		return false
	}
	if math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	return af == bf
}
