package token

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits d into tokens. It never splits the document into sections;
// that is left to the parser, which sees section headers as a TLSquare where
// a property key is expected.
func Tokenize(d []byte) ([]Token, error) {
	doc := NewPosDoc(d)
	if !utf8.Valid(d) {
		return nil, NewTokenizeErr(ErrBadUTF8, doc.Pos(firstInvalid(d)))
	}
	var (
		toks []Token
		i    = 0
		n    = len(d)
	)
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		case ';':
			for i < n && d[i] != '\n' {
				i++
			}
			continue
		}
		start := i
		var tt TokenType
		switch c {
		case '[':
			tt = TLSquare
			i++
		case ']':
			tt = TRSquare
			i++
		case '(':
			tt = TLParen
			i++
		case ')':
			tt = TRParen
			i++
		case '{':
			tt = TLCurl
			i++
		case '}':
			tt = TRCurl
			i++
		case ',':
			tt = TComma
			i++
		case ':':
			tt = TColon
			i++
		case '=':
			tt = TEquals
			i++
		case '"':
			j, err := scanQuoted(d, i)
			if err != nil {
				return nil, NewTokenizeErr(err, doc.Pos(i))
			}
			tt = TString
			i = j
		case '&':
			if i+1 >= n || d[i+1] != '"' {
				return nil, UnexpectedErr("'&'", doc.Pos(i))
			}
			j, err := scanQuoted(d, i+1)
			if err != nil {
				return nil, NewTokenizeErr(err, doc.Pos(i))
			}
			tt = TStringName
			i = j
		default:
			j := scanWord(d, i)
			if j == i {
				r, _ := utf8.DecodeRune(d[i:])
				return nil, UnexpectedErr("'"+string(r)+"'", doc.Pos(i))
			}
			tt = classify(d[i:j])
			i = j
		}
		tok := Token{Type: tt, Pos: doc.Pos(start), Bytes: d[start:i]}
		if i < n {
			tok.After = d[i]
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func firstInvalid(d []byte) int {
	i := 0
	for i < len(d) {
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz <= 1 {
			return i
		}
		i += sz
	}
	return len(d)
}

// scanQuoted returns the offset just past the closing quote of the string
// starting at d[i]. Strings may span lines.
func scanQuoted(d []byte, i int) (int, error) {
	j := i + 1
	for j < len(d) {
		switch d[j] {
		case '\\':
			j += 2
			continue
		case '"':
			return j + 1, nil
		}
		j++
	}
	return 0, ErrUnterminated
}

func scanWord(d []byte, i int) int {
	for i < len(d) {
		c := d[i]
		if c < utf8.RuneSelf {
			if !isWordByte(c) {
				return i
			}
			i++
			continue
		}
		r, sz := utf8.DecodeRune(d[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return i
		}
		i += sz
	}
	return i
}

func isWordByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '/', '.', '-', '+':
		return true
	}
	return false
}

func classify(w []byte) TokenType {
	switch string(w) {
	case "null":
		return TNull
	case "true":
		return TTrue
	case "false":
		return TFalse
	case "inf", "-inf", "+inf", "inf_neg", "nan":
		return TFloat
	}
	if tt, ok := numberType(w); ok {
		return tt
	}
	return TWord
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func numberType(w []byte) (TokenType, bool) {
	i, n := 0, len(w)
	if i < n && (w[i] == '-' || w[i] == '+') {
		i++
	}
	digits := 0
	float := false
	for i < n && isDigit(w[i]) {
		i++
		digits++
	}
	if i < n && w[i] == '.' {
		float = true
		i++
		for i < n && isDigit(w[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < n && (w[i] == 'e' || w[i] == 'E') {
		float = true
		i++
		if i < n && (w[i] == '-' || w[i] == '+') {
			i++
		}
		exp := 0
		for i < n && isDigit(w[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return 0, false
		}
	}
	if i != n {
		return 0, false
	}
	if float {
		return TFloat, true
	}
	return TInteger, true
}
