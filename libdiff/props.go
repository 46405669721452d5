package libdiff

import (
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// EntryDiff is the difference between two entries with the same key, or an
// inserted or deleted entry.
type EntryDiff struct {
	Op       Op
	Key      string
	From, To *ir.Value
	// After is the key preceding an inserted entry in the new list, or a
	// deleted one in the old list; "" for the first position.
	After string
}

// DiffProps compares two ordered entry lists. Keys are matched as a
// sequence, so a moved key shows as a delete and an insert. Entries present
// in both with equal values are left out.
func DiffProps(from, to *section.Props) []EntryDiff {
	m := map[string]rune{}
	fromKeys, toKeys := from.Keys(), to.Keys()
	diffs := diffpatch.New().DiffMainRunes(keyRunes(m, fromKeys), keyRunes(m, toKeys), false)

	var res []EntryDiff
	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				k := fromKeys[fi]
				res = append(res, EntryDiff{Op: Delete, Key: k, From: from.Get(k), After: prev(fromKeys, fi)})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				k := toKeys[ti]
				res = append(res, EntryDiff{Op: Insert, Key: k, To: to.Get(k), After: prev(toKeys, ti)})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				k := fromKeys[fi]
				a, b := from.Get(k), to.Get(k)
				if !ir.Equal(a, b) {
					res = append(res, EntryDiff{Op: Change, Key: k, From: a, To: b})
				}
				fi++
				ti++
			}
		}
	}
	return res
}

// keyRunes maps each distinct string to a rune so that go-diff can compare
// sequences of them.
func keyRunes(m map[string]rune, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			// stay clear of the surrogate range
			r = rune(0xe000 + len(m))
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}

func prev(keys []string, i int) string {
	if i == 0 {
		return ""
	}
	return keys[i-1]
}
