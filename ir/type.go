package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	StringNameType
	ArrayType
	MapType
	LiteralType
	TypedArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:       "Null",
		BoolType:       "Bool",
		NumberType:     "Number",
		StringType:     "String",
		StringNameType: "StringName",
		ArrayType:      "Array",
		MapType:        "Map",
		LiteralType:    "Literal",
		TypedArrayType: "TypedArray",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":       NullType,
		"Bool":       BoolType,
		"Number":     NumberType,
		"String":     StringType,
		"StringName": StringNameType,
		"Array":      ArrayType,
		"Map":        MapType,
		"Literal":    LiteralType,
		"TypedArray": TypedArrayType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		StringNameType,
		ArrayType,
		MapType,
		LiteralType,
		TypedArrayType,
	}
}

// IsLeaf reports whether values of type t hold no nested values.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, MapType, LiteralType, TypedArrayType:
		return false
	default:
		return true
	}
}
