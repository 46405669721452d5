// Package tree builds a scene tree out of the flat, path addressed node
// sections of a scene file, resolving scene inheritance, and flattens it
// back.
package tree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/parse"
	"github.com/gdtext/gdtext/section"
)

type Tree struct {
	root *Node
}

// NewTree returns a tree with the given root, which may be nil.
func NewTree(root *Node) *Tree {
	return &Tree{root: root}
}

func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) SetRoot(n *Node) {
	t.root = n
}

// GetNode resolves a path relative to the root. It returns nil for an empty
// tree or a missing node.
func (t *Tree) GetNode(path string) *Node {
	if t.root == nil {
		return nil
	}
	return t.root.GetNode(path)
}

// Nodes iterates over the tree in pre-order.
func (t *Tree) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if t.root == nil {
			return
		}
		var walk func(*Node) bool
		walk = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.children {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(t.root)
	}
}

// Build builds the tree described by the node sections among secs, which
// must be in pre-order. Other sections are consulted only to resolve the
// root's instance when the scene inherits from another one.
func Build(secs []*section.Section, opts ...Option) (*Tree, error) {
	o := &buildOpts{}
	for _, f := range opts {
		f(o)
	}
	var chain []string
	if o.path != "" {
		chain = append(chain, o.path)
	}
	return build(secs, o, chain)
}

func build(secs []*section.Section, o *buildOpts, chain []string) (*Tree, error) {
	t := &Tree{}
	for _, s := range secs {
		ns, ok := section.AsNode(s)
		if !ok {
			continue
		}
		pp, hasParent := ns.Parent()
		if !hasParent {
			if t.root != nil {
				return nil, fmt.Errorf("%w: %s and %s are both roots", ErrTreeStructure, t.root.name, ns.Name())
			}
			t.root = fromSection(ns)
			if t.root.instance != nil {
				if err := loadParent(t.root, secs, o, chain); err != nil {
					return nil, err
				}
			}
			continue
		}
		if t.root == nil {
			return nil, fmt.Errorf("%w: node %s precedes the root", ErrTreeStructure, ns.Name())
		}
		p := t.root.GetNode(pp)
		if p == nil {
			return nil, fmt.Errorf("%w: cannot find parent node %s of %s", ErrTreeStructure, pp, ns.Name())
		}
		p.mergeChild(ns)
	}
	return t, nil
}

// loadParent builds the scene root inherits from, adopts its root's children
// and marks every node of it inherited.
func loadParent(root *Node, secs []*section.Section, o *buildOpts, chain []string) error {
	var ext section.ExtResource
	found := false
	want := ir.IDKey(root.instance)
	for _, s := range secs {
		if e, ok := section.AsExtResource(s); ok && e.IDKey() == want {
			ext, found = e, true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: no ext_resource with id %s", ErrNoParentScene, want)
	}
	if o.loader == nil {
		return fmt.Errorf("%w: %s", ErrNoLoader, ext.Path())
	}
	res := ext.Path()
	if slices.Contains(chain, res) {
		return fmt.Errorf("%w: inheritance cycle %v -> %s", ErrTreeStructure, chain, res)
	}
	if debug.Tree() {
		debug.Logf("loading parent scene %s of %s", res, root.name)
	}
	d, err := o.loader.Load(res)
	if err != nil {
		return fmt.Errorf("loading parent scene %s: %w", res, err)
	}
	psecs, err := parse.Sections(d, o.parseOpts...)
	if err != nil {
		return fmt.Errorf("parsing parent scene %s: %w", res, err)
	}
	pt, err := build(psecs, o, append(slices.Clone(chain), res))
	if err != nil {
		return err
	}
	if pt.root == nil {
		return fmt.Errorf("%w: parent scene %s has no nodes", ErrTreeStructure, res)
	}
	pt.root.Walk(func(n *Node) {
		n.markInherited()
	})
	for _, c := range pt.root.children {
		root.AddChild(c)
	}
	root.inherited = pt.root
	return nil
}

// Flatten writes the state of every node into its backing section and
// returns the sections to keep, in pre-order. Inherited nodes without
// properties of their own are left out, except for the root.
func (t *Tree) Flatten() []*section.Section {
	var res []*section.Section
	if t.root == nil {
		return res
	}
	t.root.flatten("", func(n *Node) {
		if n.IsInherited() && !n.HasChanges() && n.parent != nil {
			if debug.Tree() {
				debug.Logf("skipping unchanged inherited node %s", n.Path())
			}
			return
		}
		res = append(res, n.sec.Section)
	})
	return res
}

// flatten updates n, whose parent attribute is pp ("" for the root), emits
// it and recurses into its children.
func (n *Node) flatten(pp string, emit func(*Node)) {
	n.update(pp)
	emit(n)
	var cp string
	switch pp {
	case "":
		cp = "."
	case ".":
		cp = n.name
	default:
		cp = pp + "/" + n.name
	}
	useIndex := n.parent == nil && n.inherited != nil
	for _, c := range n.children {
		if c.index >= 0 {
			useIndex = true
		}
	}
	for i, c := range n.children {
		if useIndex {
			c.index = i
		} else {
			c.index = -1
		}
		c.flatten(cp, emit)
	}
}

// update copies the node's header state into its section, leaving values
// which have not changed untouched.
func (n *Node) update(pp string) {
	s := n.sec
	if s.Name() != n.name {
		s.SetName(n.name)
	}
	if cur, _ := s.Type(); cur != n.typ {
		if n.typ == "" {
			s.ClearType()
		} else {
			s.SetType(n.typ)
		}
	}
	if cur, ok := s.Parent(); pp == "" && ok {
		s.ClearParent()
	} else if pp != "" && cur != pp {
		s.SetParent(pp)
	}
	if cur, _ := s.Instance(); !ir.Equal(cur, n.instance) {
		if n.instance == nil {
			s.ClearInstance()
		} else {
			s.SetInstance(n.instance)
		}
	}
	if cur, ok := s.Index(); n.index < 0 && ok {
		s.ClearIndex()
	} else if n.index >= 0 && (!ok || cur != n.index) {
		s.SetIndex(n.index)
	}
}
