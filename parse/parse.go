package parse

import (
	"errors"
	"fmt"

	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/token"
)

type parser struct {
	toks []token.Token
	i    int
	doc  *token.PosDoc
	opts *parseOpts
}

func newParser(d []byte, opts []ParseOption) (*parser, error) {
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, fromTokenizeErr(err)
	}
	if debug.Parse() {
		token.PrintTokens(debug.Writer(), toks, "parse")
	}
	return &parser{
		toks: toks,
		doc:  token.NewPosDoc(d),
		opts: getOpts(opts),
	}, nil
}

// Value parses a single value, which must make up all of d.
func Value(d []byte, opts ...ParseOption) (*ir.Value, error) {
	p, err := newParser(d, opts)
	if err != nil {
		return nil, err
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.errf(p.peek(), "trailing %s after value", p.peek().Type)
	}
	return v, nil
}

func (p *parser) done() bool {
	return p.i >= len(p.toks)
}

func (p *parser) peek() *token.Token {
	if p.done() {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) pos(t *token.Token) *token.Pos {
	if t == nil {
		return p.doc.Pos(len(p.doc.Bytes()))
	}
	return t.Pos
}

func (p *parser) errf(t *token.Token, f string, args ...any) error {
	if t == nil {
		return syntaxErr(errEOF, p.pos(nil))
	}
	return syntaxErr(fmt.Errorf(f, args...), t.Pos)
}

func (p *parser) expect(tt token.TokenType) (*token.Token, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errf(nil, "")
	}
	if t.Type != tt {
		return nil, p.errf(t, "expected %s, got %s %q", tt, t.Type, t.Bytes)
	}
	p.i++
	return t, nil
}

func (p *parser) track(v *ir.Value, t *token.Token) *ir.Value {
	if p.opts.positions != nil {
		p.opts.positions[v] = t.Pos
	}
	return v
}

func (p *parser) value() (*ir.Value, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errf(nil, "")
	}
	switch t.Type {
	case token.TNull:
		p.i++
		return p.track(ir.Null(), t), nil
	case token.TString:
		p.i++
		v := ir.FromString(t.String())
		v.Quoted = string(t.Bytes)
		return p.track(v, t), nil
	case token.TStringName:
		p.i++
		v := ir.FromStringName(t.String())
		v.Quoted = string(t.Bytes[1:])
		return p.track(v, t), nil
	case token.TTrue, token.TFalse:
		p.i++
		return p.track(ir.FromBool(t.Type == token.TTrue), t), nil
	case token.TInteger, token.TFloat:
		p.i++
		v, err := ir.FromNumber(string(t.Bytes))
		if err != nil {
			return nil, syntaxErr(fmt.Errorf("%w: %w", token.ErrNumber, err), t.Pos)
		}
		return p.track(v, t), nil
	case token.TLSquare:
		return p.array()
	case token.TLCurl:
		return p.mapValue()
	case token.TWord:
		next := p.next(1)
		switch {
		case string(t.Bytes) == "Array" && next != nil && next.Type == token.TLSquare:
			return p.typedArray()
		case next != nil && next.Type == token.TLParen:
			return p.literal()
		}
	}
	return nil, p.errf(t, "unexpected %s %q", t.Type, t.Bytes)
}

func (p *parser) next(n int) *token.Token {
	if p.i+n >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i+n]
}

// openLayout derives the layout from the byte following an opening
// delimiter.
func openLayout(open *token.Token) ir.Layout {
	l := ir.LayoutKnown
	switch open.After {
	case '\n', '\r':
		l |= ir.LayoutMultiline
	case ' ', '\t':
		l |= ir.LayoutPadded
	}
	return l
}

// seq parses comma separated values up to the closing token. A trailing
// comma is allowed and reported.
func (p *parser) seq(close token.TokenType) ([]*ir.Value, bool, error) {
	vs := []*ir.Value{}
	for {
		t := p.peek()
		if t == nil {
			return nil, false, p.errf(nil, "")
		}
		if t.Type == close {
			p.i++
			return vs, false, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, false, err
		}
		vs = append(vs, v)
		t = p.peek()
		if t == nil {
			return nil, false, p.errf(nil, "")
		}
		switch t.Type {
		case close:
			p.i++
			return vs, false, nil
		case token.TComma:
			p.i++
			if n := p.peek(); n != nil && n.Type == close {
				p.i++
				return vs, true, nil
			}
		default:
			return nil, false, p.errf(t, "expected ',' or %s, got %q", close, t.Bytes)
		}
	}
}

func (p *parser) array() (*ir.Value, error) {
	open, err := p.expect(token.TLSquare)
	if err != nil {
		return nil, err
	}
	vs, trailing, err := p.seq(token.TRSquare)
	if err != nil {
		return nil, err
	}
	v := ir.FromSlice(vs)
	v.Layout = openLayout(open)
	if trailing {
		v.Layout |= ir.LayoutTrailingComma
	}
	return p.track(v, open), nil
}

func (p *parser) mapValue() (*ir.Value, error) {
	open, err := p.expect(token.TLCurl)
	if err != nil {
		return nil, err
	}
	m := ir.NewMap()
	m.Layout = openLayout(open)
	for {
		t := p.peek()
		if t == nil {
			return nil, p.errf(nil, "")
		}
		if t.Type == token.TRCurl {
			p.i++
			return p.track(m, open), nil
		}
		if t.Type != token.TString && t.Type != token.TStringName {
			return nil, p.errf(t, "map key must be a string, got %s %q", t.Type, t.Bytes)
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TColon); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		m.Fields = append(m.Fields, k)
		m.Values = append(m.Values, v)
		t = p.peek()
		if t == nil {
			return nil, p.errf(nil, "")
		}
		switch t.Type {
		case token.TRCurl:
		case token.TComma:
			p.i++
			if n := p.peek(); n != nil && n.Type == token.TRCurl {
				m.Layout |= ir.LayoutTrailingComma
			}
		default:
			return nil, p.errf(t, "expected ',' or '}', got %q", t.Bytes)
		}
	}
}

func (p *parser) literal() (*ir.Value, error) {
	name := p.peek()
	p.i++
	open, err := p.expect(token.TLParen)
	if err != nil {
		return nil, err
	}
	args, trailing, err := p.seq(token.TRParen)
	if err != nil {
		return nil, err
	}
	v, err := ir.NewLiteral(string(name.Bytes), args...)
	if err != nil {
		if !p.opts.permissive || !errors.Is(err, ir.ErrValidation) {
			return nil, syntaxErr(err, name.Pos)
		}
		v = ir.GenericLiteral(string(name.Bytes), args...)
	}
	v.Layout = openLayout(open)
	if trailing {
		v.Layout |= ir.LayoutTrailingComma
	}
	return p.track(v, name), nil
}

// typedArray parses Array[Type]([ ... ]).
func (p *parser) typedArray() (*ir.Value, error) {
	start := p.peek()
	p.i++
	if _, err := p.expect(token.TLSquare); err != nil {
		return nil, err
	}
	elem, err := p.expect(token.TWord)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TRSquare); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TLParen); err != nil {
		return nil, err
	}
	inner, err := p.array()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TRParen); err != nil {
		return nil, err
	}
	v := &ir.Value{
		Type:   ir.TypedArrayType,
		Name:   string(elem.Bytes),
		Values: []*ir.Value{inner},
	}
	return p.track(v, start), nil
}
