package ir

import (
	"fmt"
	"math"
)

const (
	Vector2Name     = "Vector2"
	Vector3Name     = "Vector3"
	ColorName       = "Color"
	NodePathName    = "NodePath"
	ExtResourceName = "ExtResource"
	SubResourceName = "SubResource"
)

// As reports whether v is a literal named name.
func As(v *Value, name string) bool {
	return v != nil && v.Type == LiteralType && v.Name == name
}

func mustLiteral(name string, args ...*Value) *Value {
	v, err := NewLiteral(name, args...)
	if err != nil {
		panic(err)
	}
	return v
}

func floatArg(v *Value, i int) float64 {
	f, _ := v.Values[i].AsFloat()
	return f
}

func setFloatArg(v *Value, i int, f float64) {
	v.Values[i] = FromNumberValue(f)
}

// FromNumberValue renders whole numbers as integers and everything else as
// floats, the way the engine writes vector components.
func FromNumberValue(f float64) *Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return FromInt(int64(f))
	}
	return FromFloat(f)
}

// Vector2 is a view of a Vector2( x, y ) literal.
type Vector2 struct{ *Value }

func NewVector2(x, y float64) Vector2 {
	v := Vector2{mustLiteral(Vector2Name, FromInt(0), FromInt(0))}
	v.SetX(x)
	v.SetY(y)
	return v
}

func AsVector2(v *Value) (Vector2, bool) {
	if !As(v, Vector2Name) || len(v.Values) != 2 {
		return Vector2{}, false
	}
	return Vector2{v}, true
}

func (v Vector2) X() float64     { return floatArg(v.Value, 0) }
func (v Vector2) Y() float64     { return floatArg(v.Value, 1) }
func (v Vector2) SetX(f float64) { setFloatArg(v.Value, 0, f) }
func (v Vector2) SetY(f float64) { setFloatArg(v.Value, 1, f) }

// Vector3 is a view of a Vector3( x, y, z ) literal.
type Vector3 struct{ *Value }

func NewVector3(x, y, z float64) Vector3 {
	v := Vector3{mustLiteral(Vector3Name, FromInt(0), FromInt(0), FromInt(0))}
	v.SetX(x)
	v.SetY(y)
	v.SetZ(z)
	return v
}

func AsVector3(v *Value) (Vector3, bool) {
	if !As(v, Vector3Name) || len(v.Values) != 3 {
		return Vector3{}, false
	}
	return Vector3{v}, true
}

func (v Vector3) X() float64     { return floatArg(v.Value, 0) }
func (v Vector3) Y() float64     { return floatArg(v.Value, 1) }
func (v Vector3) Z() float64     { return floatArg(v.Value, 2) }
func (v Vector3) SetX(f float64) { setFloatArg(v.Value, 0, f) }
func (v Vector3) SetY(f float64) { setFloatArg(v.Value, 1, f) }
func (v Vector3) SetZ(f float64) { setFloatArg(v.Value, 2, f) }

// Color is a view of a Color( r, g, b, a ) literal with channels in [0,1].
type Color struct{ *Value }

// NewColor fails with ErrValidation if any channel is outside [0,1].
func NewColor(r, g, b, a float64) (Color, error) {
	args := make([]*Value, 4)
	for i, f := range []float64{r, g, b, a} {
		args[i] = FromNumberValue(f)
	}
	v, err := NewLiteral(ColorName, args...)
	if err != nil {
		return Color{}, err
	}
	return Color{v}, nil
}

func AsColor(v *Value) (Color, bool) {
	if !As(v, ColorName) || len(v.Values) != 4 {
		return Color{}, false
	}
	return Color{v}, true
}

func (c Color) R() float64     { return floatArg(c.Value, 0) }
func (c Color) G() float64     { return floatArg(c.Value, 1) }
func (c Color) B() float64     { return floatArg(c.Value, 2) }
func (c Color) A() float64     { return floatArg(c.Value, 3) }
func (c Color) SetR(f float64) { setFloatArg(c.Value, 0, f) }
func (c Color) SetG(f float64) { setFloatArg(c.Value, 1, f) }
func (c Color) SetB(f float64) { setFloatArg(c.Value, 2, f) }
func (c Color) SetA(f float64) { setFloatArg(c.Value, 3, f) }

// NodePath is a view of a NodePath("path") literal.
type NodePath struct{ *Value }

func NewNodePath(path string) NodePath {
	return NodePath{mustLiteral(NodePathName, FromString(path))}
}

func AsNodePath(v *Value) (NodePath, bool) {
	if !As(v, NodePathName) || len(v.Values) != 1 || v.Values[0].Type != StringType {
		return NodePath{}, false
	}
	return NodePath{v}, true
}

func (p NodePath) Path() string        { return p.Values[0].String }
func (p NodePath) SetPath(path string) { p.Values[0].SetString(path) }

// Reference is a view of an ExtResource( id ) or SubResource( id ) literal.
// The id is an integer in older files and a string in newer ones.
type Reference struct{ *Value }

// NewReference builds a reference literal of the given kind, which must be
// ExtResourceName or SubResourceName.
func NewReference(kind string, id *Value) (Reference, error) {
	if kind != ExtResourceName && kind != SubResourceName {
		return Reference{}, fmt.Errorf("%w: %q is not a reference kind", ErrValidation, kind)
	}
	v, err := NewLiteral(kind, id)
	if err != nil {
		return Reference{}, err
	}
	return Reference{v}, nil
}

func ExtRef(id int64) Reference {
	return Reference{mustLiteral(ExtResourceName, FromInt(id))}
}

func SubRef(id int64) Reference {
	return Reference{mustLiteral(SubResourceName, FromInt(id))}
}

// AsReference reports whether v is an ExtResource or SubResource literal.
func AsReference(v *Value) (Reference, bool) {
	if v == nil || v.Type != LiteralType || len(v.Values) != 1 {
		return Reference{}, false
	}
	if v.Name != ExtResourceName && v.Name != SubResourceName {
		return Reference{}, false
	}
	return Reference{v}, true
}

func (r Reference) Kind() string { return r.Name }
func (r Reference) IsExt() bool  { return r.Name == ExtResourceName }
func (r Reference) ID() *Value   { return r.Values[0] }

func (r Reference) SetID(id *Value) { r.Values[0] = id }

// IDKey returns the id as text, the form used to key id maps.
func (r Reference) IDKey() string { return IDKey(r.Values[0]) }

// IDKey returns the text of an integer or string resource id.
func IDKey(id *Value) string {
	if id == nil {
		return ""
	}
	if id.Type == NumberType {
		if i, ok := id.AsInt(); ok {
			return fmt.Sprint(i)
		}
		return id.Number
	}
	return id.String
}
