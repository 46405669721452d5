package parse

import (
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
	"github.com/gdtext/gdtext/token"
)

type parseOpts struct {
	permissive bool
	positions  map[*ir.Value]*token.Pos
	sections   map[*section.Section]*token.Pos
}

type ParseOption func(*parseOpts)

// ParsePermissive accepts ext_resource sections with a property body and
// keeps literals which fail validation, such as colors outside [0,1], as
// generic literals.
func ParsePermissive(v bool) ParseOption {
	return func(o *parseOpts) { o.permissive = v }
}

// ParsePositions records the start of every parsed value in m.
func ParsePositions(m map[*ir.Value]*token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

// ParseSectionPositions records the opening bracket of every section header
// in m.
func ParseSectionPositions(m map[*section.Section]*token.Pos) ParseOption {
	return func(o *parseOpts) { o.sections = m }
}

func getOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	return o
}
