package ir

import (
	"errors"
	"math"
	"testing"
)

func TestFromNumber(t *testing.T) {
	tests := []struct {
		in    string
		isInt bool
		f     float64
	}{
		{in: "0", isInt: true, f: 0},
		{in: "-12", isInt: true, f: -12},
		{in: "1.0", f: 1},
		{in: "1e-05", f: 1e-05},
		{in: "-0.5", f: -0.5},
		{in: "inf", f: math.Inf(1)},
		{in: "-inf", f: math.Inf(-1)},
		{in: "99999999999999999999", f: 1e20},
	}
	for _, tt := range tests {
		v, err := FromNumber(tt.in)
		if err != nil {
			t.Errorf("FromNumber(%q): %v", tt.in, err)
			continue
		}
		if v.IsInt() != tt.isInt {
			t.Errorf("FromNumber(%q).IsInt() = %t", tt.in, v.IsInt())
		}
		f, _ := v.AsFloat()
		if f != tt.f {
			t.Errorf("FromNumber(%q) = %v want %v", tt.in, f, tt.f)
		}
		if v.Number != tt.in {
			t.Errorf("source text lost: %q", v.Number)
		}
	}
	if _, err := FromNumber("1.2.3"); err == nil {
		t.Errorf("expected error")
	}
}

func TestEqual(t *testing.T) {
	one, _ := FromNumber("1.0")
	tests := []struct {
		name string
		a, b *Value
		eq   bool
	}{
		{"int float", FromInt(1), one, true},
		{"int int", FromInt(1), FromInt(2), false},
		{"string name", FromString("a"), FromStringName("a"), false},
		{"strings", FromString("a"), &Value{Type: StringType, String: "a", Quoted: `"a"`}, true},
		{"arrays", FromStrings("a", "b"), FromStrings("a", "b"), true},
		{"array order", FromStrings("a", "b"), FromStrings("b", "a"), false},
		{"maps", NewMap().Set("a", FromInt(1)), NewMap().Set("a", FromInt(1)), true},
		{"map values", NewMap().Set("a", FromInt(1)), NewMap().Set("a", FromInt(2)), false},
		{"literal layout", NewVector2(1, 2).Value, &Value{Type: LiteralType, Name: "Vector2", Layout: LayoutKnown, Values: []*Value{FromInt(1), FromInt(2)}}, true},
		{"literal name", ExtRef(1).Value, SubRef(1).Value, false},
		{"nan", FromFloat(math.NaN()), FromFloat(math.NaN()), true},
		{"nil", nil, Null(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.eq {
				t.Errorf("Equal = %t want %t", got, tt.eq)
			}
		})
	}
}

func TestMapOps(t *testing.T) {
	m := NewMap().Set("a", FromInt(1)).Set("b", FromInt(2)).Set("a", FromInt(3))
	if got := m.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("keys %v", got)
	}
	if i, _ := m.Get("a").AsInt(); i != 3 {
		t.Errorf("a = %d", i)
	}
	if !m.Delete("a") || m.Get("a") != nil || m.Delete("a") {
		t.Errorf("delete failed")
	}
}

func TestCloneIndependent(t *testing.T) {
	v := NewMap().Set("pos", NewVector2(1, 2).Value)
	c := v.Clone()
	vec, _ := AsVector2(c.Get("pos"))
	vec.SetX(5)
	orig, _ := AsVector2(v.Get("pos"))
	if orig.X() != 1 {
		t.Errorf("clone shares storage")
	}
	if Equal(v, c) {
		t.Errorf("expected clone to differ after edit")
	}
}

func TestRegistry(t *testing.T) {
	if _, err := NewColor(0, 0.5, 1, 1); err != nil {
		t.Errorf("valid color: %v", err)
	}
	if _, err := NewLiteral("Color", FromFloat(math.NaN()), FromInt(0), FromInt(0), FromInt(1)); !errors.Is(err, ErrValidation) {
		t.Errorf("nan channel: got %v", err)
	}
	if _, err := NewColor(0, 1.5, 0, 1); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := NewLiteral("Vector2", FromInt(1)); !errors.Is(err, ErrValidation) {
		t.Errorf("expected arity error, got %v", err)
	}
	if _, err := NewLiteral("ExtResource", FromBool(true)); !errors.Is(err, ErrValidation) {
		t.Errorf("expected id error, got %v", err)
	}
	if _, err := NewLiteral("Rect2", FromInt(1), FromInt(2), FromInt(3), FromInt(4)); err != nil {
		t.Errorf("generic literal: %v", err)
	}
	if err := Register(&Ctor{Name: "Vector2", Arity: 2}); !errors.Is(err, ErrRegistered) {
		t.Errorf("expected duplicate registration error, got %v", err)
	}
	if Lookup("Color") == nil || Lookup("Transform") != nil {
		t.Errorf("unexpected lookup results")
	}
}

func TestViewsAlias(t *testing.T) {
	v := NewVector3(1, 2, 3)
	v.SetZ(0.25)
	if v.Values[2].Number != "0.25" {
		t.Errorf("view write not visible: %q", v.Values[2].Number)
	}
	c, _ := NewColor(1, 1, 1, 1)
	c.SetA(0.5)
	if c.A() != 0.5 || c.Values[3].Number != "0.5" {
		t.Errorf("color alpha %v", c.A())
	}
	p := NewNodePath("../Sprite")
	p.SetPath("Body")
	if p.Values[0].String != "Body" {
		t.Errorf("node path %q", p.Values[0].String)
	}
	r := ExtRef(3)
	r.SetID(FromString("1_abc"))
	if r.IDKey() != "1_abc" || !r.IsExt() {
		t.Errorf("reference %q", r.IDKey())
	}
	if _, ok := AsReference(NewVector2(0, 0).Value); ok {
		t.Errorf("vector is not a reference")
	}
}

func TestWalk(t *testing.T) {
	v := NewMap().
		Set("a", FromSlice([]*Value{ExtRef(1).Value, FromInt(2)})).
		Set("b", GenericLiteral("Foo", SubRef(2).Value)).
		Set("c", FromTypedArray("Resource", []*Value{SubRef(3).Value}))
	var refs []string
	Walk(v, func(v *Value) bool {
		if r, ok := AsReference(v); ok {
			refs = append(refs, r.Kind()+":"+r.IDKey())
			return false
		}
		return true
	})
	want := []string{"ExtResource:1", "SubResource:2", "SubResource:3"}
	if len(refs) != len(want) {
		t.Fatalf("got %v want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("got %v want %v", refs, want)
		}
	}
}

func TestIsLeaf(t *testing.T) {
	for _, typ := range Types() {
		want := typ != ArrayType && typ != MapType && typ != LiteralType && typ != TypedArrayType
		if got := typ.IsLeaf(); got != want {
			t.Errorf("%s.IsLeaf() = %t", typ, got)
		}
	}
	// a string's Values are never visited
	s := FromString("x")
	s.Values = []*Value{FromInt(1)}
	n := 0
	Walk(s, func(*Value) bool { n++; return true })
	if n != 1 {
		t.Errorf("visited %d values under a leaf", n)
	}
}
