package main

import (
	"context"
	"strings"

	"github.com/gdtext/gdtext/token"

	"go.lsp.dev/protocol"
)

// tokenTypes is the legend announced in Initialize.
var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenType,
}

var tokenModifiers = []protocol.SemanticTokenModifiers{
	protocol.SemanticTokenModifierDeclaration,
}

const (
	semComment = iota
	semKeyword
	semString
	semNumber
	semOperator
	semProperty
	semType
)

type semToken struct {
	line, char, length uint32
	typ                uint32
	mods               uint32
}

// classify gives the semantic type of toks[i], or -1 for brackets.
// inHeader is set inside a section header.
func classify(toks []token.Token, i int, inHeader bool) (int, uint32) {
	t := &toks[i]
	next := token.TokenType(-1)
	if i+1 < len(toks) {
		next = toks[i+1].Type
	}
	switch t.Type {
	case token.TWord:
		switch {
		case inHeader && i > 0 && toks[i-1].Type == token.TLSquare:
			return semKeyword, 1
		case next == token.TEquals:
			return semProperty, 0
		case next == token.TLParen || next == token.TLSquare:
			return semType, 0
		}
		return semKeyword, 0
	case token.TString, token.TStringName:
		return semString, 0
	case token.TInteger, token.TFloat:
		return semNumber, 0
	case token.TNull, token.TTrue, token.TFalse:
		return semKeyword, 0
	case token.TEquals, token.TColon, token.TComma:
		return semOperator, 0
	}
	return -1, 0
}

func collectSemanticTokens(content string) []semToken {
	d := []byte(content)
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil
	}
	pd := token.NewPosDoc(d)
	var res []semToken
	// emit splits multi-line spans, one token per line.
	emit := func(start, end int, typ int, mods uint32) {
		for start < end {
			stop := end
			if nl := strings.IndexByte(content[start:end], '\n'); nl != -1 {
				stop = start + nl
			}
			if stop > start {
				l, c := pd.LineCol(start)
				res = append(res, semToken{line: uint32(l), char: uint32(c), length: uint32(stop - start), typ: uint32(typ), mods: mods})
			}
			start = stop + 1
		}
	}
	// comments run from ';' to the end of the line, between tokens
	gap := func(start, end int) {
		for start < end {
			sc := strings.IndexByte(content[start:end], ';')
			if sc == -1 {
				return
			}
			cs := start + sc
			ce := end
			if nl := strings.IndexByte(content[cs:end], '\n'); nl != -1 {
				ce = cs + nl
			}
			emit(cs, ce, semComment, 0)
			start = ce
		}
	}
	prev := 0
	depth := 0
	inHeader := false
	for i := range toks {
		t := &toks[i]
		gap(prev, t.Pos.I)
		prev = t.End()
		switch t.Type {
		case token.TLSquare:
			if depth == 0 && t.Pos.Col() == 0 {
				inHeader = true
			}
			depth++
			continue
		case token.TRSquare:
			depth--
			if depth == 0 {
				inHeader = false
			}
			continue
		}
		typ, mods := classify(toks, i, inHeader)
		if typ < 0 {
			continue
		}
		emit(t.Pos.I, t.End(), typ, mods)
	}
	gap(prev, len(content))
	return res
}

// encodeTokens delta-encodes toks, which are in document order.
func encodeTokens(toks []semToken) []uint32 {
	data := []uint32{}
	var prevLine, prevChar uint32
	for _, t := range toks {
		deltaLine := t.line - prevLine
		deltaChar := t.char
		if deltaLine == 0 {
			deltaChar = t.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, t.length, t.typ, t.mods)
		prevLine, prevChar = t.line, t.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: encodeTokens(collectSemanticTokens(doc.content))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	r := params.Range
	var in []semToken
	for _, t := range collectSemanticTokens(doc.content) {
		if t.line >= r.Start.Line && t.line <= r.End.Line {
			in = append(in, t)
		}
	}
	return &protocol.SemanticTokens{Data: encodeTokens(in)}, nil
}
