package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
)

// Node is a node of a scene tree. Its properties live in the backing node
// section, so they are written out in place when the tree is flattened.
//
// A node adopted from a parent scene is inherited: it keeps a snapshot of
// its state in the parent scene, reads fall through to that snapshot, and
// its name, type and instance cannot change.
type Node struct {
	name     string
	typ      string
	instance *ir.Value
	index    int

	parent   *Node
	children []*Node

	sec       section.Node
	inherited *Node
}

// New returns a node of the given type.
func New(name, typ string) *Node {
	return &Node{
		name:  name,
		typ:   typ,
		index: -1,
		sec:   section.NewNode(name, "", "", -1),
	}
}

// NewInstance returns a node instancing the ext_resource with the given id.
func NewInstance(name string, id *ir.Value) *Node {
	n := New(name, "")
	n.instance = id
	return n
}

func fromSection(s section.Node) *Node {
	n := &Node{name: s.Name(), index: -1, sec: s}
	n.typ, _ = s.Type()
	n.instance, _ = s.Instance()
	if i, ok := s.Index(); ok {
		n.index = i
	}
	return n
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s)", n.name)
}

func (n *Node) Name() string {
	return n.name
}

// SetName renames the node. Inherited nodes, the root of an inheriting scene
// included, keep the name their scene gives them.
func (n *Node) SetName(name string) error {
	if n.IsInherited() {
		return fmt.Errorf("%w: cannot rename inherited node %s", ErrTreeMutation, n.name)
	}
	n.name = name
	return nil
}

// Type returns the node type, as defined by the closest scene which sets
// one.
func (n *Node) Type() string {
	if n.typ == "" && n.inherited != nil {
		return n.inherited.Type()
	}
	return n.typ
}

// SetType sets the type and clears the instance. An empty type clears only
// the type.
func (n *Node) SetType(typ string) error {
	if n.IsInherited() {
		return fmt.Errorf("%w: cannot change the type of inherited node %s", ErrTreeMutation, n.name)
	}
	if typ != "" {
		n.instance = nil
	}
	n.typ = typ
	return nil
}

// Instance returns the id of the instanced ext_resource, or nil. The id of
// an inherited node refers to the ext_resources of the scene which set it.
func (n *Node) Instance() *ir.Value {
	if n.instance == nil && n.inherited != nil {
		return n.inherited.Instance()
	}
	return n.instance
}

// SetInstance sets the instanced ext_resource id and clears the type.
func (n *Node) SetInstance(id *ir.Value) error {
	if n.IsInherited() {
		return fmt.Errorf("%w: cannot change the instance of inherited node %s", ErrTreeMutation, n.name)
	}
	if id != nil {
		n.typ = ""
	}
	n.instance = id
	return nil
}

// Index returns the explicit sibling index, if any.
func (n *Node) Index() (int, bool) {
	return n.index, n.index >= 0
}

func (n *Node) IsInherited() bool {
	return n.inherited != nil
}

// HasChanges reports whether the node has properties of its own.
func (n *Node) HasChanges() bool {
	return n.sec.Props.Len() > 0
}

// Props returns the properties set on this node itself, not those it
// inherits.
func (n *Node) Props() *section.Props {
	return n.sec.Props
}

// Section returns the backing section.
func (n *Node) Section() section.Node {
	return n.sec
}

// Get returns a property, looking through inherited snapshots when the node
// does not set it.
func (n *Node) Get(key string) (*ir.Value, bool) {
	if v, ok := n.sec.Props.Lookup(key); ok {
		return v, true
	}
	if n.inherited != nil {
		return n.inherited.Get(key)
	}
	return nil, false
}

// Set sets a property. Setting an inherited node's property to the value
// it inherits removes the override.
func (n *Node) Set(key string, v *ir.Value) {
	if n.inherited != nil {
		if iv, ok := n.inherited.Get(key); ok && ir.Equal(iv, v) {
			n.sec.Props.Delete(key)
			return
		}
	}
	n.sec.Props.Set(key, v)
}

// Delete removes the node's own value for key. Inherited values are not
// affected.
func (n *Node) Delete(key string) {
	n.sec.Props.Delete(key)
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildAt returns the i'th child, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) AddChild(c *Node) {
	n.children = append(n.children, c)
	c.parent = n
}

// InsertChild adds c before the i'th child.
func (n *Node) InsertChild(i int, c *Node) {
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, c)
	c.parent = n
}

// RemoveChild removes c, which must be a child of n and not inherited.
func (n *Node) RemoveChild(c *Node) error {
	i := slices.Index(n.children, c)
	if i == -1 {
		return fmt.Errorf("%w: %s is not a child of %s", ErrTreeStructure, c.name, n.name)
	}
	return n.RemoveChildAt(i)
}

func (n *Node) RemoveChildNamed(name string) error {
	for i, c := range n.children {
		if c.name == name {
			return n.RemoveChildAt(i)
		}
	}
	return fmt.Errorf("%w: %s has no child %s", ErrTreeStructure, n.name, name)
}

func (n *Node) RemoveChildAt(i int) error {
	c := n.ChildAt(i)
	if c == nil {
		return fmt.Errorf("%w: %s has no child at %d", ErrTreeStructure, n.name, i)
	}
	if c.IsInherited() {
		return fmt.Errorf("%w: cannot remove inherited node %s", ErrTreeMutation, c.name)
	}
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	return nil
}

// RemoveFromParent detaches n. It does nothing on a root.
func (n *Node) RemoveFromParent() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// GetNode resolves a slash separated path of child names. "" and "."
// resolve to n itself.
func (n *Node) GetNode(path string) *Node {
	if path == "" || path == "." {
		return n
	}
	first, rest, _ := strings.Cut(path, "/")
	c := n.Child(first)
	if c == nil {
		return nil
	}
	return c.GetNode(rest)
}

// Path returns the path by which children of the root refer to n: "." for
// the root and slash separated names below it.
func (n *Node) Path() string {
	if n.parent == nil {
		return "."
	}
	pp := n.parent.Path()
	if pp == "." {
		return n.name
	}
	return pp + "/" + n.name
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func (n *Node) clone() *Node {
	s := section.NewNode(n.name, "", "", -1)
	s.Props = n.sec.Props.Clone()
	return &Node{
		name:     n.name,
		typ:      n.Type(),
		instance: n.Instance(),
		index:    -1,
		sec:      s,
	}
}

// markInherited freezes the current state as a snapshot and starts the
// node over with no properties and a fresh section.
func (n *Node) markInherited() {
	snap := n.clone()
	snap.inherited = n.inherited
	n.inherited = snap
	n.typ = ""
	n.instance = nil
	n.sec = section.NewNode(n.name, "", "", -1)
}

// mergeChild adds the node described by s, or binds s to the existing child
// of the same name when that child came from a parent scene.
func (n *Node) mergeChild(s section.Node) {
	if c := n.Child(s.Name()); c != nil {
		c.sec = s
		c.typ, _ = s.Type()
		if i, ok := s.Index(); ok {
			c.index = i
		}
		return
	}
	n.AddChild(fromSection(s))
}
