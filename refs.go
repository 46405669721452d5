package gdtext

import (
	"fmt"
	"strconv"

	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
)

// Ref is a resource reference found in a section's header attributes or
// properties.
type Ref struct {
	ir.Reference
	Section *section.Section
	// Key is the attribute or property holding the reference, possibly
	// nested inside it.
	Key string
}

// refKind maps a reference literal name to the section kind it refers to.
func refKind(r ir.Reference) string {
	if r.IsExt() {
		return section.KindExtResource
	}
	return section.KindSubResource
}

// sectionRefs calls fn on every reference in s.
func sectionRefs(s *section.Section, fn func(Ref)) {
	visit := func(key string, v *ir.Value) {
		ir.Walk(v, func(x *ir.Value) bool {
			if r, ok := ir.AsReference(x); ok {
				fn(Ref{Reference: r, Section: s, Key: key})
				return false
			}
			return true
		})
	}
	for k, v := range s.Header.Attrs.All() {
		visit(k, v)
	}
	for k, v := range s.Props.All() {
		visit(k, v)
	}
}

// References returns every resource reference in the file, in document
// order.
func (f *File) References() []Ref {
	var res []Ref
	for _, s := range f.sections {
		sectionRefs(s, func(r Ref) { res = append(res, r) })
	}
	return res
}

// Resolve returns the section a reference points at, or nil.
func (f *File) Resolve(r ir.Reference) *section.Section {
	kind := refKind(r)
	key := r.IDKey()
	for _, s := range f.sections {
		if s.Kind() == kind && ir.IDKey(s.Attr("id")) == key {
			return s
		}
	}
	return nil
}

type idSet map[string]map[string]bool

func (m idSet) add(kind, id string) bool {
	if m[kind] == nil {
		m[kind] = map[string]bool{}
	}
	if m[kind][id] {
		return false
	}
	m[kind][id] = true
	return true
}

// RemoveUnusedResources removes the ext_resource and sub_resource sections
// which are not reachable from a node, the [resource] section or a
// connection, following references through sub_resources. It returns the
// number of sections removed.
func (f *File) RemoveUnusedResources() int {
	used := idSet{}
	subs := map[string]*section.Section{}
	for _, s := range f.sections {
		if s.Kind() == section.KindSubResource {
			subs[ir.IDKey(s.Attr("id"))] = s
		}
	}
	var queue []*section.Section
	mark := func(r Ref) {
		kind, id := refKind(r.Reference), r.IDKey()
		if used.add(kind, id) && kind == section.KindSubResource {
			if s := subs[id]; s != nil {
				queue = append(queue, s)
			}
		}
	}
	for _, s := range f.sections {
		switch s.Kind() {
		case section.KindNode, section.KindResourceBody, section.KindConnection:
			sectionRefs(s, mark)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		sectionRefs(s, mark)
	}
	if debug.Refs() {
		debug.LogAny(used)
	}
	n := 0
	for i := len(f.sections) - 1; i >= 0; i-- {
		s := f.sections[i]
		if !isResourceKind(s.Kind()) || used[s.Kind()][ir.IDKey(s.Attr("id"))] {
			continue
		}
		if debug.Refs() {
			debug.Logf("removing unused %s %s", s.Kind(), ir.IDKey(s.Attr("id")))
		}
		f.RemoveAt(i)
		n++
	}
	return n
}

// RenumberResourceIDs gives each kind of resource the ids 1 to N in
// document order and rewrites every reference to match. Integer ids stay
// integers and string ids stay strings. If any reference does not resolve,
// it fails with ErrReference and the file is unchanged.
func (f *File) RenumberResourceIDs() error {
	newIDs := map[string]map[string]*ir.Value{
		section.KindExtResource: {},
		section.KindSubResource: {},
	}
	next := map[string]int64{}
	for _, s := range f.sections {
		if !isResourceKind(s.Kind()) {
			continue
		}
		next[s.Kind()]++
		old := s.Attr("id")
		var id *ir.Value
		if old != nil && old.Type == ir.StringType {
			id = ir.FromString(strconv.FormatInt(next[s.Kind()], 10))
		} else {
			id = ir.FromInt(next[s.Kind()])
		}
		newIDs[s.Kind()][ir.IDKey(old)] = id
	}
	refs := f.References()
	targets := make([]*ir.Value, len(refs))
	for i, r := range refs {
		id, ok := newIDs[refKind(r.Reference)][r.IDKey()]
		if !ok {
			return fmt.Errorf("%w: %s( %s ) in %s %s", ErrReference, r.Name, r.IDKey(), r.Section.Kind(), r.Key)
		}
		targets[i] = id
	}
	for _, s := range f.sections {
		if !isResourceKind(s.Kind()) {
			continue
		}
		id := newIDs[s.Kind()][ir.IDKey(s.Attr("id"))]
		if !ir.Equal(id, s.Attr("id")) {
			s.SetAttr("id", id.Clone())
		}
	}
	for i, r := range refs {
		id := targets[i]
		if !ir.Equal(id, r.ID()) {
			if debug.Refs() {
				debug.Logf("renumbering %s( %s ) to %v", r.Name, r.IDKey(), id)
			}
			r.SetID(id.Clone())
		}
	}
	return nil
}
