package main

import (
	"encoding/json"
	"fmt"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
)

// The JSON form of a section body is {"attrs": {...}, "props": {...}} with
// values in the ir JSON form.

func propsValue(p *section.Props) *ir.Value {
	m := ir.NewMap()
	for k, v := range p.All() {
		m.Set(k, v)
	}
	return m
}

func bodyValue(s *section.Section) *ir.Value {
	return ir.NewMap().
		Set("attrs", propsValue(s.Header.Attrs)).
		Set("props", propsValue(s.Props))
}

func sectionValue(s *section.Section) *ir.Value {
	return ir.NewMap().
		Set("kind", ir.FromString(s.Kind())).
		Set("attrs", propsValue(s.Header.Attrs)).
		Set("props", propsValue(s.Props))
}

// setBody replaces the attributes and properties of s with those of the
// JSON form v. Entries keep their old position, and their old value when
// it is the same up to JSON key order.
func setBody(s *section.Section, v *ir.Value) error {
	attrs, props := v.Get("attrs"), v.Get("props")
	if attrs == nil || attrs.Type != ir.MapType || props == nil || props.Type != ir.MapType {
		return fmt.Errorf("%w: section body wants attrs and props maps", ir.ErrType)
	}
	s.Header.Attrs.Reset(mergeEntries(s.Header.Attrs, attrs))
	s.Props.Reset(mergeEntries(s.Props, props))
	return nil
}

func mergeEntries(old *section.Props, m *ir.Value) []ir.Entry {
	var res []ir.Entry
	seen := map[string]bool{}
	for k, ov := range old.All() {
		nv := m.Get(k)
		if nv == nil {
			continue
		}
		seen[k] = true
		if sameJSON(ov, nv) {
			nv = ov
		}
		res = append(res, ir.Entry{Key: k, Value: nv})
	}
	for i, f := range m.Fields {
		if !seen[f.String] {
			res = append(res, ir.Entry{Key: f.String, Value: m.Values[i]})
		}
	}
	return res
}

func sameJSON(a, b *ir.Value) bool {
	da, err := json.Marshal(ir.ToAny(a))
	if err != nil {
		return false
	}
	db, err := json.Marshal(ir.ToAny(b))
	if err != nil {
		return false
	}
	return string(da) == string(db)
}
