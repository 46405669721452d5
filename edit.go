package gdtext

import (
	"fmt"
	"slices"

	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
	"github.com/gdtext/gdtext/tree"
)

// TreeEdit is an open editing scope over a file's scene tree. The tree is
// built over copies of the node sections; the file is untouched until
// Commit.
type TreeEdit struct {
	f      *File
	tree   *tree.Tree
	origin map[*section.Section]*section.Section
	done   bool
}

// EditTree builds the scene tree of f and opens an editing scope on it.
func (f *File) EditTree() (*TreeEdit, error) {
	origin := map[*section.Section]*section.Section{}
	secs := make([]*section.Section, len(f.sections))
	for i, s := range f.sections {
		if s.Kind() != section.KindNode {
			secs[i] = s
			continue
		}
		c := s.Clone()
		origin[c] = s
		secs[i] = c
	}
	t, err := tree.Build(secs, f.opts.treeOpts()...)
	if err != nil {
		return nil, err
	}
	return &TreeEdit{f: f, tree: t, origin: origin}, nil
}

func (e *TreeEdit) Tree() *tree.Tree {
	return e.tree
}

// Commit flattens the tree and replaces the file's node sections with the
// result. Sections the tree was built from are updated in place.
func (e *TreeEdit) Commit() error {
	if e.done {
		return ErrEditDone
	}
	e.done = true
	flat := e.tree.Flatten()
	out := make([]*section.Section, len(flat))
	for i, s := range flat {
		o, ok := e.origin[s]
		if !ok {
			out[i] = s
			continue
		}
		o.Header.Attrs.Reset(s.Header.Attrs.Entries())
		o.Props.Reset(s.Props.Entries())
		out[i] = o
	}
	f := e.f
	f.sections = slices.DeleteFunc(f.sections, func(s *section.Section) bool {
		return s.Kind() == section.KindNode
	})
	i := f.insertIndex(section.KindNode)
	f.sections = slices.Insert(f.sections, i, out...)
	if debug.Tree() {
		debug.Logf("committed %d node sections", len(out))
	}
	return nil
}

// UseTree runs fn on the file's scene tree and commits the result if fn
// returns nil. Otherwise the file is left as it was.
func (f *File) UseTree(fn func(*tree.Tree) error) error {
	e, err := f.EditTree()
	if err != nil {
		return err
	}
	if err := fn(e.Tree()); err != nil {
		return err
	}
	return e.Commit()
}

// GetNode returns the node at path in the file's scene tree, "" being the
// root. It returns nil if there is no such node. The node belongs to a
// detached tree: edits to it are not written back, use UseTree for that.
func (f *File) GetNode(path string) (*tree.Node, error) {
	e, err := f.EditTree()
	if err != nil {
		return nil, err
	}
	return e.Tree().GetNode(path), nil
}

func (f *File) rootNode() (section.Node, bool) {
	for _, n := range f.Nodes() {
		if _, ok := n.Parent(); !ok {
			return n, true
		}
	}
	return section.Node{}, false
}

// IsInherited reports whether the root node instances another scene.
func (f *File) IsInherited() bool {
	root, ok := f.rootNode()
	if !ok {
		return false
	}
	_, ok = root.Instance()
	return ok
}

// ParentScene returns the resource path of the scene the root node
// instances.
func (f *File) ParentScene() (string, bool) {
	root, ok := f.rootNode()
	if !ok {
		return "", false
	}
	id, ok := root.Instance()
	if !ok {
		return "", false
	}
	e, ok := f.FindExtResource(Where("id", id))
	if !ok {
		return "", false
	}
	return e.Path(), true
}

// LoadParentScene loads and parses the scene the root node instances,
// using the file's loader.
func (f *File) LoadParentScene() (*File, error) {
	res, ok := f.ParentScene()
	if !ok {
		return nil, fmt.Errorf("%w: file does not inherit a scene", ErrNoParentScene)
	}
	if f.opts.loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, res)
	}
	d, err := f.opts.loader.Load(res)
	if err != nil {
		return nil, err
	}
	o := f.opts
	o.path = res
	return parseWith(d, o)
}

// ExtReference returns a reference to the ext_resource with the given id,
// failing with ErrReference if there is none.
func (f *File) ExtReference(id *ir.Value) (ir.Reference, error) {
	e, ok := f.FindExtResource(Where("id", id))
	if !ok {
		return ir.Reference{}, fmt.Errorf("%w: no ext_resource with id %s", ErrReference, ir.IDKey(id))
	}
	return e.Reference(), nil
}
