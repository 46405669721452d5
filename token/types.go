package token

import "fmt"

type TokenType int

const (
	TLSquare TokenType = iota
	TRSquare
	TLParen
	TRParen
	TLCurl
	TRCurl
	TComma
	TColon
	TEquals
	TNull
	TTrue
	TFalse
	TInteger
	TFloat
	TString
	TStringName
	TWord
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLSquare:    "TLSquare",
		TRSquare:    "TRSquare",
		TLParen:     "TLParen",
		TRParen:     "TRParen",
		TLCurl:      "TLCurl",
		TRCurl:      "TRCurl",
		TComma:      "TComma",
		TColon:      "TColon",
		TEquals:     "TEquals",
		TNull:       "TNull",
		TTrue:       "TTrue",
		TFalse:      "TFalse",
		TInteger:    "TInteger",
		TFloat:      "TFloat",
		TString:     "TString",
		TStringName: "TStringName",
		TWord:       "TWord",
	}[t]
}

// Token is a lexical token. Bytes holds the exact source text, quotes
// included for strings. After is the byte immediately following the token in
// the source, or 0 at end of input.
type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
	After byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded text of the token. For strings and string names
// this is the unescaped content; for everything else it is the source text.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		return QuotedToString(t.Bytes)
	case TStringName:
		return QuotedToString(t.Bytes[1:])
	default:
		return string(t.Bytes)
	}
}

// End is the offset just past the token.
func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}
