// Package query filters sections with boolean expressions.
//
// An expression sees the section as:
//
//	kind    the section kind, "node", "ext_resource", ...
//	attrs   header attributes as plain values
//	props   properties as plain values
//	has(k)  whether an attribute or property k is set
//	text(k) the text form of attribute or property k, "" if unset
//	ref(k)  the id of the resource reference held by k, "" if none
//
// For example:
//
//	kind == "node" && attrs.type == "Sprite" && has("texture")
//	kind == "sub_resource" && props.radius > 10
package query

import (
	"fmt"

	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Query struct {
	src  string
	prog *vm.Program
}

// Compile compiles a boolean expression over a section.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(env(section.New(""))), expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", src, err)
	}
	return &Query{src: src, prog: prog}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string {
	return q.src
}

// Match evaluates the query against s.
func (q *Query) Match(s *section.Section) (bool, error) {
	res, err := expr.Run(q.prog, env(s))
	if err != nil {
		return false, fmt.Errorf("query %q on %s: %w", q.src, s.Kind(), err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("query %q gave %T, not bool", q.src, res)
	}
	return b, nil
}

// Filter returns the sections among secs which match.
func (q *Query) Filter(secs []*section.Section) ([]*section.Section, error) {
	var res []*section.Section
	for _, s := range secs {
		ok, err := q.Match(s)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, s)
		}
	}
	return res, nil
}

func env(s *section.Section) map[string]any {
	return map[string]any{
		"kind":  s.Kind(),
		"attrs": plain(s.Header.Attrs),
		"props": plain(s.Props),
		"has": func(k string) bool {
			_, ok := s.Lookup(k)
			return ok
		},
		"text": func(k string) string {
			v, ok := s.Lookup(k)
			if !ok {
				return ""
			}
			return encode.MustString(v)
		},
		"ref": func(k string) string {
			v, _ := s.Lookup(k)
			if r, ok := ir.AsReference(v); ok {
				return r.IDKey()
			}
			return ""
		},
	}
}

func plain(p *section.Props) map[string]any {
	res := make(map[string]any, p.Len())
	for k, v := range p.All() {
		res[k] = ir.ToAny(v)
	}
	return res
}
