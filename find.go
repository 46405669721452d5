package gdtext

import (
	"fmt"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
)

// Constraint requires a section field, header attribute or property to
// equal a value.
type Constraint struct {
	Key   string
	Value *ir.Value
}

// Where builds a constraint. v may be an *ir.Value, an ir view such as
// ir.Reference, or a Go string, integer, float, bool or nil.
func Where(key string, v any) Constraint {
	return Constraint{Key: key, Value: valueOf(v)}
}

func valueOf(v any) *ir.Value {
	switch x := v.(type) {
	case nil:
		return ir.Null()
	case *ir.Value:
		return x
	case ir.Reference:
		return x.Value
	case ir.Vector2:
		return x.Value
	case ir.Vector3:
		return x.Value
	case ir.Color:
		return x.Value
	case ir.NodePath:
		return x.Value
	case string:
		return ir.FromString(x)
	case bool:
		return ir.FromBool(x)
	case int:
		return ir.FromInt(int64(x))
	case int64:
		return ir.FromInt(x)
	case float64:
		return ir.FromFloat(x)
	case []string:
		return ir.FromStrings(x...)
	}
	return ir.FromString(fmt.Sprint(v))
}

// matches checks c against the typed view of s first, then against the
// header attributes and properties.
func matches(s *section.Section, c Constraint) bool {
	switch s.Kind() {
	case section.KindExtResource, section.KindSubResource:
		if c.Key == "id" {
			return ir.IDKey(s.Attr("id")) == ir.IDKey(c.Value)
		}
	case section.KindNode:
		n := section.Node{Section: s}
		switch c.Key {
		case "index":
			if i, ok := n.Index(); ok && ir.Equal(ir.FromInt(int64(i)), c.Value) {
				return true
			}
		case "instance":
			if id, ok := n.Instance(); ok && ir.IDKey(id) == ir.IDKey(c.Value) {
				return true
			}
		}
	}
	v, ok := s.Lookup(c.Key)
	return ok && ir.Equal(v, c.Value)
}

func matchAll(s *section.Section, kind string, cs []Constraint) bool {
	if kind != "" && s.Kind() != kind {
		return false
	}
	for _, c := range cs {
		if !matches(s, c) {
			return false
		}
	}
	return true
}

// Find returns the first section of the given kind meeting every
// constraint, or nil. An empty kind matches any section.
func (f *File) Find(kind string, cs ...Constraint) *section.Section {
	for _, s := range f.sections {
		if matchAll(s, kind, cs) {
			return s
		}
	}
	return nil
}

// FindAll returns every section of the given kind meeting every constraint.
func (f *File) FindAll(kind string, cs ...Constraint) []*section.Section {
	var res []*section.Section
	for _, s := range f.sections {
		if matchAll(s, kind, cs) {
			res = append(res, s)
		}
	}
	return res
}

func (f *File) FindNode(cs ...Constraint) (section.Node, bool) {
	return section.AsNode(f.Find(section.KindNode, cs...))
}

func (f *File) FindExtResource(cs ...Constraint) (section.ExtResource, bool) {
	return section.AsExtResource(f.Find(section.KindExtResource, cs...))
}

func (f *File) FindSubResource(cs ...Constraint) (section.SubResource, bool) {
	return section.AsSubResource(f.Find(section.KindSubResource, cs...))
}

func (f *File) Nodes() []section.Node {
	var res []section.Node
	for _, s := range f.sections {
		if n, ok := section.AsNode(s); ok {
			res = append(res, n)
		}
	}
	return res
}

func (f *File) ExtResources() []section.ExtResource {
	var res []section.ExtResource
	for _, s := range f.sections {
		if e, ok := section.AsExtResource(s); ok {
			res = append(res, e)
		}
	}
	return res
}

func (f *File) SubResources() []section.SubResource {
	var res []section.SubResource
	for _, s := range f.sections {
		if r, ok := section.AsSubResource(s); ok {
			res = append(res, r)
		}
	}
	return res
}

// Resource returns the [resource] section of a resource file.
func (f *File) Resource() (section.Resource, bool) {
	return section.AsResource(f.Find(section.KindResourceBody))
}
