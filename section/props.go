package section

import (
	"iter"
	"slices"

	"github.com/gdtext/gdtext/ir"
)

// Props is an insertion ordered map from keys to values. The zero value is
// empty and ready to use.
type Props struct {
	entries []ir.Entry
}

func NewProps(entries ...ir.Entry) *Props {
	return &Props{entries: entries}
}

func (p *Props) index(key string) int {
	for i := range p.entries {
		if p.entries[i].Key == key {
			return i
		}
	}
	return -1
}

func (p *Props) Len() int {
	return len(p.entries)
}

func (p *Props) Lookup(key string) (*ir.Value, bool) {
	i := p.index(key)
	if i == -1 {
		return nil, false
	}
	return p.entries[i].Value, true
}

// Get returns the value under key, or nil.
func (p *Props) Get(key string) *ir.Value {
	v, _ := p.Lookup(key)
	return v
}

func (p *Props) Has(key string) bool {
	return p.index(key) != -1
}

// Set replaces the value under key in place, or appends it.
func (p *Props) Set(key string, v *ir.Value) {
	if i := p.index(key); i != -1 {
		p.entries[i].Value = v
		return
	}
	p.entries = append(p.entries, ir.Entry{Key: key, Value: v})
}

// SetOrdered is Set, except that a new key is inserted before the first
// existing key which follows it in order. Keys absent from order go last.
func (p *Props) SetOrdered(key string, v *ir.Value, order []string) {
	if i := p.index(key); i != -1 {
		p.entries[i].Value = v
		return
	}
	rank := slices.Index(order, key)
	if rank == -1 {
		p.entries = append(p.entries, ir.Entry{Key: key, Value: v})
		return
	}
	at := len(p.entries)
	for i, e := range p.entries {
		r := slices.Index(order, e.Key)
		if r > rank {
			at = i
			break
		}
	}
	p.entries = slices.Insert(p.entries, at, ir.Entry{Key: key, Value: v})
}

func (p *Props) Delete(key string) bool {
	i := p.index(key)
	if i == -1 {
		return false
	}
	p.entries = slices.Delete(p.entries, i, i+1)
	return true
}

func (p *Props) Keys() []string {
	res := make([]string, len(p.entries))
	for i := range p.entries {
		res[i] = p.entries[i].Key
	}
	return res
}

// All iterates over the entries in order.
func (p *Props) All() iter.Seq2[string, *ir.Value] {
	return func(yield func(string, *ir.Value) bool) {
		for _, e := range p.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Entries returns the entries in order. The slice is shared.
func (p *Props) Entries() []ir.Entry {
	return p.entries
}

// Reset replaces all entries.
func (p *Props) Reset(entries []ir.Entry) {
	p.entries = entries
}

func (p *Props) Clone() *Props {
	res := &Props{entries: make([]ir.Entry, len(p.entries))}
	for i, e := range p.entries {
		res.entries[i] = ir.Entry{Key: e.Key, Value: e.Value.Clone()}
	}
	return res
}

// Equal compares keys and values in order.
func (p *Props) Equal(o *Props) bool {
	if p.Len() != o.Len() {
		return false
	}
	for i := range p.entries {
		a, b := p.entries[i], o.entries[i]
		if a.Key != b.Key || !ir.Equal(a.Value, b.Value) {
			return false
		}
	}
	return true
}
