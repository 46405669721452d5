package libdiff

import (
	"fmt"
	"strings"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// SectionDiff is one step of the edit script between two section lists.
// Equal steps are kept so that the script covers both lists in full.
type SectionDiff struct {
	Op       Op
	From, To *section.Section
	// Attrs and Props hold the entry differences of a Change.
	Attrs []EntryDiff
	Props []EntryDiff
}

// Key identifies a section across two versions of a file: nodes by path,
// resources by id, connections by their endpoints.
func Key(s *section.Section) string {
	switch s.Kind() {
	case section.KindNode:
		n := section.Node{Section: s}
		if p, ok := n.Parent(); ok {
			return "node " + p + "/" + n.Name()
		}
		return "node " + n.Name()
	case section.KindExtResource, section.KindSubResource:
		return s.Kind() + " " + ir.IDKey(s.Attr("id"))
	case section.KindConnection:
		var parts []string
		for _, k := range []string{"signal", "from", "to", "method"} {
			v, _ := s.StringAttr(k)
			parts = append(parts, v)
		}
		return "connection " + strings.Join(parts, " ")
	case section.KindEditable:
		p, _ := s.StringAttr("path")
		return "editable " + p
	}
	return s.Kind()
}

// Sections computes the edit script turning from into to.
func Sections(from, to []*section.Section) []SectionDiff {
	m := map[string]rune{}
	diffs := diffpatch.New().DiffMainRunes(sectionRunes(m, from), sectionRunes(m, to), false)

	var res []SectionDiff
	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				res = append(res, SectionDiff{Op: Delete, From: from[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				res = append(res, SectionDiff{Op: Insert, To: to[ti]})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				res = append(res, diffSection(from[fi], to[ti]))
				fi++
				ti++
			}
		}
	}
	return res
}

func sectionRunes(m map[string]rune, secs []*section.Section) []rune {
	keys := make([]string, len(secs))
	for i, s := range secs {
		keys[i] = Key(s)
	}
	return keyRunes(m, keys)
}

func diffSection(a, b *section.Section) SectionDiff {
	d := SectionDiff{
		From:  a,
		To:    b,
		Attrs: DiffProps(a.Header.Attrs, b.Header.Attrs),
		Props: DiffProps(a.Props, b.Props),
	}
	if len(d.Attrs) == 0 && len(d.Props) == 0 {
		d.Op = Equal
	} else {
		d.Op = Change
	}
	return d
}

// Changed reports whether the script holds anything besides Equal steps.
func Changed(ds []SectionDiff) bool {
	for i := range ds {
		if ds[i].Op != Equal {
			return true
		}
	}
	return false
}

// Reverse returns the script turning to back into from.
func Reverse(ds []SectionDiff) []SectionDiff {
	res := make([]SectionDiff, len(ds))
	for i, d := range ds {
		r := SectionDiff{From: d.To, To: d.From}
		switch d.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		default:
			r.Op = d.Op
		}
		r.Attrs = reverseEntries(d.Attrs)
		r.Props = reverseEntries(d.Props)
		res[i] = r
	}
	return res
}

func reverseEntries(es []EntryDiff) []EntryDiff {
	if es == nil {
		return nil
	}
	res := make([]EntryDiff, len(es))
	for i, e := range es {
		r := EntryDiff{Key: e.Key, From: e.To, To: e.From, Op: e.Op, After: e.After}
		switch e.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		}
		res[i] = r
	}
	return res
}

// Apply runs the script over from, checking that the sections it expects
// are there, and returns new sections. Sections of from are not modified.
func Apply(from []*section.Section, ds []SectionDiff) ([]*section.Section, error) {
	var res []*section.Section
	fi := 0
	next := func(d SectionDiff) (*section.Section, error) {
		if fi >= len(from) {
			return nil, fmt.Errorf("cannot patch, expected %s past the end", Key(d.From))
		}
		s := from[fi]
		if Key(s) != Key(d.From) {
			return nil, fmt.Errorf("cannot patch, unexpected section %s, expected %s", Key(s), Key(d.From))
		}
		fi++
		return s, nil
	}
	for _, d := range ds {
		switch d.Op {
		case Insert:
			res = append(res, d.To.Clone())
		case Delete:
			if _, err := next(d); err != nil {
				return nil, err
			}
		case Equal:
			s, err := next(d)
			if err != nil {
				return nil, err
			}
			res = append(res, s.Clone())
		case Change:
			s, err := next(d)
			if err != nil {
				return nil, err
			}
			c := s.Clone()
			if err := applyEntries(c.Header.Attrs, d.Attrs); err != nil {
				return nil, fmt.Errorf("%s: %w", Key(s), err)
			}
			if err := applyEntries(c.Props, d.Props); err != nil {
				return nil, fmt.Errorf("%s: %w", Key(s), err)
			}
			res = append(res, c)
		}
	}
	if fi != len(from) {
		return nil, fmt.Errorf("cannot patch, %d sections left over", len(from)-fi)
	}
	return res, nil
}

// applyEntries applies deletes and changes first, then inserts in order,
// so that a key moved within the list is found where the script puts it.
func applyEntries(p *section.Props, es []EntryDiff) error {
	for _, e := range es {
		switch e.Op {
		case Delete:
			if !p.Delete(e.Key) {
				return fmt.Errorf("cannot patch, missing key %q", e.Key)
			}
		case Change:
			if !p.Has(e.Key) {
				return fmt.Errorf("cannot patch, missing key %q", e.Key)
			}
			p.Set(e.Key, e.To.Clone())
		}
	}
	for _, e := range es {
		if e.Op != Insert {
			continue
		}
		if p.Has(e.Key) {
			return fmt.Errorf("cannot patch, key %q already present", e.Key)
		}
		insertAfter(p, e.After, e.Key, e.To.Clone())
	}
	return nil
}

func insertAfter(p *section.Props, after, key string, v *ir.Value) {
	entries := p.Entries()
	i := 0
	if after != "" {
		for j, e := range entries {
			if e.Key == after {
				i = j + 1
				break
			}
		}
	}
	res := make([]ir.Entry, 0, len(entries)+1)
	res = append(res, entries[:i]...)
	res = append(res, ir.Entry{Key: key, Value: v})
	res = append(res, entries[i:]...)
	p.Reset(res)
}
