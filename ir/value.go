package ir

import (
	"math"
	"strconv"
	"strings"
)

// Value is a node of the value grammar. Which fields are meaningful depends on
// Type:
//
//   - NumberType: Number holds the source text, Int64 or Float64 the decoded
//     value.
//   - StringType, StringNameType: String holds the decoded text, Quoted the
//     source form (possibly empty).
//   - ArrayType: Values.
//   - MapType: Fields holds the keys, Values the corresponding values.
//   - LiteralType: Name and positional arguments in Values.
//   - TypedArrayType: Name is the element type, Values[0] the inner array.
type Value struct {
	Type   Type
	Layout Layout

	Name   string
	Fields []*Value
	Values []*Value

	String  string
	Quoted  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

// Layout records how a composite value was written so that an unmodified
// value renders as it was read.
type Layout uint8

const (
	// LayoutKnown marks the other bits as meaningful. A zero Layout takes
	// the encoder's default style.
	LayoutKnown Layout = 1 << iota
	// LayoutPadded means a space after the opening and before the closing
	// delimiter.
	LayoutPadded
	// LayoutMultiline means each element sits on its own line.
	LayoutMultiline
	// LayoutTrailingComma means the last element is followed by a comma.
	LayoutTrailingComma
)

func (l Layout) Has(f Layout) bool {
	return l&f != 0
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{
		Type:   NumberType,
		Number: strconv.FormatInt(v, 10),
		Int64:  &v,
	}
}

func FromFloat(f float64) *Value {
	return &Value{
		Type:    NumberType,
		Number:  FormatFloat(f),
		Float64: &f,
	}
}

// FormatFloat renders f in the shortest form that parses back to f.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FromNumber decodes the source text of a number. Whether the result is an
// integer or a float is decided by the text alone.
func FromNumber(text string) (*Value, error) {
	v := &Value{Type: NumberType, Number: text}
	switch text {
	case "inf", "+inf":
		f := math.Inf(1)
		v.Float64 = &f
		return v, nil
	case "-inf", "inf_neg":
		f := math.Inf(-1)
		v.Float64 = &f
		return v, nil
	case "nan":
		f := math.NaN()
		v.Float64 = &f
		return v, nil
	}
	if !strings.ContainsAny(text, ".eE") {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			v.Int64 = &i
			return v, nil
		}
		// out of int64 range, keep as float
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	v.Float64 = &f
	return v, nil
}

func FromString(s string) *Value {
	return &Value{Type: StringType, String: s}
}

func FromStringName(s string) *Value {
	return &Value{Type: StringNameType, String: s}
}

func FromSlice(vs []*Value) *Value {
	if vs == nil {
		vs = []*Value{}
	}
	return &Value{Type: ArrayType, Values: vs}
}

func FromStrings(ss ...string) *Value {
	vs := make([]*Value, len(ss))
	for i, s := range ss {
		vs[i] = FromString(s)
	}
	return FromSlice(vs)
}

func NewMap() *Value {
	return &Value{Type: MapType, Fields: []*Value{}, Values: []*Value{}}
}

// FromTypedArray builds Array[elem]([vs...]).
func FromTypedArray(elem string, vs []*Value) *Value {
	return &Value{
		Type:   TypedArrayType,
		Name:   elem,
		Values: []*Value{FromSlice(vs)},
	}
}

// GenericLiteral builds a literal without consulting the registry.
func GenericLiteral(name string, args ...*Value) *Value {
	if args == nil {
		args = []*Value{}
	}
	return &Value{Type: LiteralType, Name: name, Values: args}
}

// IsInt reports whether y is a number written as an integer.
func (y *Value) IsInt() bool {
	return y.Type == NumberType && y.Int64 != nil
}

// AsInt returns the integer value of y, accepting floats with no fractional
// part.
func (y *Value) AsInt() (int64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 != nil {
		f := *y.Float64
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
	}
	return 0, false
}

func (y *Value) AsFloat() (float64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	return 0, false
}

// AsString returns the text of a String or StringName.
func (y *Value) AsString() (string, bool) {
	if y == nil {
		return "", false
	}
	switch y.Type {
	case StringType, StringNameType:
		return y.String, true
	}
	return "", false
}

// SetString replaces the text of a string value, dropping its source form.
func (y *Value) SetString(s string) {
	y.String = s
	y.Quoted = ""
}

// Elements returns the elements of an Array or TypedArray.
func (y *Value) Elements() []*Value {
	switch y.Type {
	case ArrayType:
		return y.Values
	case TypedArrayType:
		if len(y.Values) == 1 {
			return y.Values[0].Values
		}
	}
	return nil
}

func (y *Value) fieldIndex(key string) int {
	for i, f := range y.Fields {
		if f.String == key {
			return i
		}
	}
	return -1
}

// Get returns the value of a map entry by key text.
func (y *Value) Get(key string) *Value {
	if y == nil || y.Type != MapType {
		return nil
	}
	i := y.fieldIndex(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Set replaces or appends a map entry. New keys are plain strings.
func (y *Value) Set(key string, v *Value) *Value {
	i := y.fieldIndex(key)
	if i != -1 {
		y.Values[i] = v
		return y
	}
	y.Fields = append(y.Fields, FromString(key))
	y.Values = append(y.Values, v)
	return y
}

func (y *Value) Delete(key string) bool {
	i := y.fieldIndex(key)
	if i == -1 {
		return false
	}
	y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
	y.Values = append(y.Values[:i], y.Values[i+1:]...)
	return true
}

// Keys returns the map keys as text.
func (y *Value) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

func (y *Value) Clone() *Value {
	if y == nil {
		return nil
	}
	res := &Value{}
	return y.CloneTo(res)
}

func (y *Value) CloneTo(dst *Value) *Value {
	dst.Type = y.Type
	dst.Layout = y.Layout
	dst.Name = y.Name
	dst.String = y.String
	dst.Quoted = y.Quoted
	dst.Bool = y.Bool
	dst.Number = y.Number
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Fields = cloneAll(y.Fields)
	dst.Values = cloneAll(y.Values)
	return dst
}

func cloneAll(vs []*Value) []*Value {
	if vs == nil {
		return nil
	}
	res := make([]*Value, len(vs))
	for i, v := range vs {
		res[i] = v.Clone()
	}
	return res
}
