package parse

import (
	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"
	"github.com/gdtext/gdtext/token"
)

// Sections parses a whole document into its sections, in order.
func Sections(d []byte, opts ...ParseOption) ([]*section.Section, error) {
	p, err := newParser(d, opts)
	if err != nil {
		return nil, err
	}
	var res []*section.Section
	for !p.done() {
		s, err := p.section()
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	if debug.Parse() {
		debug.Logf("parsed %d sections", len(res))
	}
	return res, nil
}

// Section parses text holding exactly one section.
func Section(d []byte, opts ...ParseOption) (*section.Section, error) {
	p, err := newParser(d, opts)
	if err != nil {
		return nil, err
	}
	s, err := p.section()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.errf(p.peek(), "text after section")
	}
	return s, nil
}

func (p *parser) section() (*section.Section, error) {
	open, err := p.expect(token.TLSquare)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.TWord)
	if err != nil {
		return nil, err
	}
	s := section.New(string(name.Bytes))
	for {
		t := p.peek()
		if t == nil {
			return nil, p.errf(nil, "")
		}
		if t.Type == token.TRSquare {
			p.i++
			break
		}
		k, v, err := p.entry()
		if err != nil {
			return nil, err
		}
		s.Header.Attrs.Set(k, v)
	}
	for !p.done() && p.peek().Type != token.TLSquare {
		k, v, err := p.entry()
		if err != nil {
			return nil, err
		}
		s.Props.Set(k, v)
	}
	if err := s.Check(p.opts.permissive); err != nil {
		l, c := open.Pos.LineCol()
		return nil, &StructureError{Err: err, Offset: open.Pos.I, Line: l + 1, Col: c + 1}
	}
	if p.opts.sections != nil {
		p.opts.sections[s] = open.Pos
	}
	return s, nil
}

// entry parses key=value, the form shared by header attributes and
// properties.
func (p *parser) entry() (string, *ir.Value, error) {
	t := p.peek()
	if t == nil {
		return "", nil, p.errf(nil, "")
	}
	switch t.Type {
	case token.TWord, token.TInteger, token.TFloat, token.TNull, token.TTrue, token.TFalse:
	default:
		return "", nil, p.errf(t, "expected key, got %s %q", t.Type, t.Bytes)
	}
	p.i++
	if _, err := p.expect(token.TEquals); err != nil {
		return "", nil, err
	}
	v, err := p.value()
	if err != nil {
		return "", nil, err
	}
	return string(t.Bytes), v, nil
}
