package section

import (
	"strconv"

	"github.com/gdtext/gdtext/ir"
)

// attrOrder gives the order in which new header attributes are inserted.
var attrOrder = map[string][]string{
	KindScene:       {"load_steps", "format", "uid"},
	KindResource:    {"type", "script_class", "load_steps", "format", "uid"},
	KindExtResource: {"path", "type", "id"},
	KindSubResource: {"type", "id"},
	KindNode:        {"name", "type", "parent", "owner", "index", "groups", "instance_placeholder", "instance"},
	KindConnection:  {"signal", "from", "to", "method", "flags", "binds"},
	KindEditable:    {"path"},
}

// ExtResource is a view of an ext_resource section.
type ExtResource struct{ *Section }

// NewExtResource builds [ext_resource path=... type=... id=...].
func NewExtResource(path, typ string, id *ir.Value) ExtResource {
	s := New(KindExtResource)
	e := ExtResource{s}
	e.SetPath(path)
	e.SetType(typ)
	e.SetID(id)
	return e
}

func AsExtResource(s *Section) (ExtResource, bool) {
	if s == nil || s.Kind() != KindExtResource {
		return ExtResource{}, false
	}
	return ExtResource{s}, true
}

func (e ExtResource) Path() string {
	p, _ := e.StringAttr("path")
	return p
}

func (e ExtResource) SetPath(p string) { e.SetAttr("path", ir.FromString(p)) }

func (e ExtResource) Type() string {
	t, _ := e.StringAttr("type")
	return t
}

func (e ExtResource) SetType(t string) { e.SetAttr("type", ir.FromString(t)) }
func (e ExtResource) ID() *ir.Value    { return e.Attr("id") }
func (e ExtResource) SetID(id *ir.Value) {
	e.SetAttr("id", id)
}

// IDKey is the id as text.
func (e ExtResource) IDKey() string { return ir.IDKey(e.ID()) }

// Reference returns a new ExtResource literal pointing at this section.
func (e ExtResource) Reference() ir.Reference {
	r, _ := ir.NewReference(ir.ExtResourceName, e.ID().Clone())
	return r
}

// SubResource is a view of a sub_resource section.
type SubResource struct{ *Section }

// NewSubResource builds [sub_resource type=... id=...].
func NewSubResource(typ string, id *ir.Value) SubResource {
	s := New(KindSubResource)
	r := SubResource{s}
	r.SetType(typ)
	r.SetID(id)
	return r
}

func AsSubResource(s *Section) (SubResource, bool) {
	if s == nil || s.Kind() != KindSubResource {
		return SubResource{}, false
	}
	return SubResource{s}, true
}

func (r SubResource) Type() string {
	t, _ := r.StringAttr("type")
	return t
}

func (r SubResource) SetType(t string)   { r.SetAttr("type", ir.FromString(t)) }
func (r SubResource) ID() *ir.Value      { return r.Attr("id") }
func (r SubResource) SetID(id *ir.Value) { r.SetAttr("id", id) }
func (r SubResource) IDKey() string      { return ir.IDKey(r.ID()) }

func (r SubResource) Reference() ir.Reference {
	ref, _ := ir.NewReference(ir.SubResourceName, r.ID().Clone())
	return ref
}

// Resource is a view of the [resource] section of a resource file. It has
// no attributes of its own.
type Resource struct{ *Section }

func NewResource() Resource {
	return Resource{New(KindResourceBody)}
}

func AsResource(s *Section) (Resource, bool) {
	if s == nil || s.Kind() != KindResourceBody {
		return Resource{}, false
	}
	return Resource{s}, true
}

// Node is a view of a node section. A node has a type or an instance, never
// both; nodes overriding an inherited node have neither.
type Node struct{ *Section }

// NewNode builds a node section. An empty typ or parent is omitted, as is a
// negative index.
func NewNode(name, typ, parent string, index int) Node {
	n := Node{New(KindNode)}
	n.SetName(name)
	if typ != "" {
		n.SetType(typ)
	}
	if parent != "" {
		n.SetParent(parent)
	}
	if index >= 0 {
		n.SetIndex(index)
	}
	return n
}

// NewInstanceNode builds a node instancing the ext_resource with the given
// id.
func NewInstanceNode(name string, instance *ir.Value, parent string, index int) Node {
	n := NewNode(name, "", parent, index)
	n.SetInstance(instance)
	return n
}

func AsNode(s *Section) (Node, bool) {
	if s == nil || s.Kind() != KindNode {
		return Node{}, false
	}
	return Node{s}, true
}

func (n Node) Name() string {
	s, _ := n.StringAttr("name")
	return s
}

func (n Node) SetName(name string) { n.SetAttr("name", ir.FromString(name)) }

func (n Node) Type() (string, bool) {
	return n.StringAttr("type")
}

// SetType sets the type and clears any instance.
func (n Node) SetType(t string) {
	n.DeleteAttr("instance")
	n.SetAttr("type", ir.FromString(t))
}

func (n Node) ClearType() { n.DeleteAttr("type") }

// Parent returns the parent path: "." for children of the root, and
// slash separated names below that. The root has no parent.
func (n Node) Parent() (string, bool) {
	return n.StringAttr("parent")
}

func (n Node) SetParent(p string) { n.SetAttr("parent", ir.FromString(p)) }
func (n Node) ClearParent()       { n.DeleteAttr("parent") }

// Instance returns the id of the instanced ext_resource.
func (n Node) Instance() (*ir.Value, bool) {
	r, ok := ir.AsReference(n.Attr("instance"))
	if !ok || !r.IsExt() {
		return nil, false
	}
	return r.ID(), true
}

// SetInstance points the node at an ext_resource id and clears any type.
func (n Node) SetInstance(id *ir.Value) {
	n.DeleteAttr("type")
	r, _ := ir.NewReference(ir.ExtResourceName, id)
	n.SetAttr("instance", r.Value)
}

func (n Node) ClearInstance() { n.DeleteAttr("instance") }

// Index returns the explicit sibling index. It is written as a string.
func (n Node) Index() (int, bool) {
	v := n.Attr("index")
	if v == nil {
		return 0, false
	}
	if s, ok := v.AsString(); ok {
		i, err := strconv.Atoi(s)
		return i, err == nil
	}
	i, ok := v.AsInt()
	return int(i), ok
}

func (n Node) SetIndex(i int) { n.SetAttr("index", ir.FromString(strconv.Itoa(i))) }
func (n Node) ClearIndex()    { n.DeleteAttr("index") }

func (n Node) Groups() []string {
	v := n.Attr("groups")
	if v == nil {
		return nil
	}
	var res []string
	for _, g := range v.Elements() {
		if s, ok := g.AsString(); ok {
			res = append(res, s)
		}
	}
	return res
}

// SetGroups writes the groups attribute, one group per line. An empty list
// removes it.
func (n Node) SetGroups(groups []string) {
	if len(groups) == 0 {
		n.DeleteAttr("groups")
		return
	}
	v := ir.FromStrings(groups...)
	v.Layout = ir.LayoutKnown | ir.LayoutMultiline | ir.LayoutTrailingComma
	n.SetAttr("groups", v)
}
