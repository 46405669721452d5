package section

import (
	"errors"
	"testing"

	"github.com/gdtext/gdtext/ir"
	"github.com/google/go-cmp/cmp"
)

func TestPropsOrder(t *testing.T) {
	p := &Props{}
	p.Set("b", ir.FromInt(1))
	p.Set("a", ir.FromInt(2))
	p.Set("b", ir.FromInt(3))
	if diff := cmp.Diff([]string{"b", "a"}, p.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if i, _ := p.Get("b").AsInt(); i != 3 {
		t.Errorf("b = %d", i)
	}
	p.Delete("b")
	if p.Has("b") || p.Len() != 1 {
		t.Errorf("delete failed: %v", p.Keys())
	}
}

func TestSetOrdered(t *testing.T) {
	order := []string{"name", "type", "parent", "index", "instance"}
	p := &Props{}
	p.SetOrdered("name", ir.FromString("A"), order)
	p.SetOrdered("index", ir.FromString("1"), order)
	p.SetOrdered("parent", ir.FromString("."), order)
	p.SetOrdered("unknown", ir.FromInt(1), order)
	p.SetOrdered("type", ir.FromString("Node"), order)
	want := []string{"name", "type", "parent", "index", "unknown"}
	if diff := cmp.Diff(want, p.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestNodeView(t *testing.T) {
	n := NewNode("Sprite", "Sprite", ".", 1)
	if got, want := n.String(), `[node name="Sprite" type="Sprite" parent="." index="1"]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	n.SetInstance(ir.FromInt(2))
	if _, ok := n.Type(); ok {
		t.Errorf("instance must clear type")
	}
	if got, want := n.String(), `[node name="Sprite" parent="." index="1" instance=ExtResource( 2 )]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	n.SetType("Node2D")
	if _, ok := n.Instance(); ok {
		t.Errorf("type must clear instance")
	}
	if i, ok := n.Index(); !ok || i != 1 {
		t.Errorf("index %d", i)
	}
	n.SetGroups([]string{"a", "b"})
	n.Set("visible", ir.FromBool(false))
	want := "[node name=\"Sprite\" type=\"Node2D\" parent=\".\" index=\"1\" groups=[\n\"a\",\n\"b\",\n]]\nvisible = false"
	if got := n.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if diff := cmp.Diff([]string{"a", "b"}, n.Groups()); diff != "" {
		t.Errorf("groups (-want +got):\n%s", diff)
	}
}

func TestResourceViews(t *testing.T) {
	e := NewExtResource("res://Other.tscn", "PackedScene", ir.FromInt(1))
	if got, want := e.String(), `[ext_resource path="res://Other.tscn" type="PackedScene" id=1]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	ref := e.Reference()
	if !ref.IsExt() || ref.IDKey() != "1" {
		t.Errorf("reference %v", ref.Value)
	}
	s := NewSubResource("CircleShape2D", ir.FromString("Circle_1"))
	s.Set("radius", ir.FromFloat(4.5))
	if got, want := s.String(), "[sub_resource type=\"CircleShape2D\" id=\"Circle_1\"]\nradius = 4.5"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if _, ok := AsSubResource(e.Section); ok {
		t.Errorf("ext_resource is not a sub_resource")
	}
}

func TestCheck(t *testing.T) {
	e := NewExtResource("res://a.png", "Texture", ir.FromInt(1))
	if err := e.Check(false); err != nil {
		t.Errorf("empty body: %v", err)
	}
	e.Set("size", ir.FromInt(1))
	if err := e.Check(false); !errors.Is(err, ErrStructure) {
		t.Errorf("strict: %v", err)
	}
	if err := e.Check(true); err != nil {
		t.Errorf("permissive: %v", err)
	}
	n := NewNode("A", "Node", "", -1)
	n.Header.Attrs.Set("instance", ir.ExtRef(1).Value)
	if err := n.Check(true); !errors.Is(err, ErrStructure) {
		t.Errorf("type and instance: %v", err)
	}
}

func TestOrder(t *testing.T) {
	a, _ := Order(KindScene)
	b, _ := Order(KindResource)
	c, _ := Order(KindNode)
	if a != b || c <= a {
		t.Errorf("unexpected order %d %d %d", a, b, c)
	}
	if _, ok := Order("input"); ok {
		t.Errorf("input is not a known kind")
	}
}

func TestEqualAndClone(t *testing.T) {
	n := NewNode("A", "Node", "", -1)
	n.Set("p", ir.NewVector2(1, 2).Value)
	c := n.Clone()
	if !n.Equal(c) {
		t.Errorf("clone differs")
	}
	v, _ := ir.AsVector2(c.Get("p"))
	v.SetX(3)
	if n.Equal(c) {
		t.Errorf("clone shares values")
	}
}
