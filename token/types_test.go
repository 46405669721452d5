package token

import (
	"errors"
	"testing"
)

type tsTest struct {
	in, out string
}

func TestTypesString(t *testing.T) {
	var tss = []tsTest{
		{in: `"abc"`, out: `abc`},
		{in: `"\"'"`, out: `"'`},
		{in: `"\t"`, out: "\t"},
		{in: `&"name"`, out: "name"},
		{in: "\"two\nlines\"", out: "two\nlines"},
	}
	for _, ts := range tss {
		toks, err := Tokenize([]byte(ts.in))
		if err != nil {
			t.Error(err)
			continue
		}
		if ts.out != toks[0].String() {
			t.Errorf("got %q want %q", toks[0].String(), ts.out)
		}
	}
}

func TestTokenizeTypes(t *testing.T) {
	in := `[node name="A" index="2"]
pos = Vector2( -1.5, 2 )
tracks/0/keys = { "a": [ 1e-05, inf, null, true, false ] }
0/name = &"x" ; trailing comment
`
	want := []TokenType{
		TLSquare, TWord, TWord, TEquals, TString, TWord, TEquals, TString, TRSquare,
		TWord, TEquals, TWord, TLParen, TFloat, TComma, TInteger, TRParen,
		TWord, TEquals, TLCurl, TString, TColon, TLSquare, TFloat, TComma, TFloat, TComma,
		TNull, TComma, TTrue, TComma, TFalse, TRSquare, TRCurl,
		TWord, TEquals, TStringName,
	}
	toks, err := Tokenize([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != len(want) {
		PrintTokens(testWriter{t}, toks, "got")
		t.Fatalf("got %d tokens want %d", len(toks), len(want))
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Errorf("token %d %q: got %s want %s", i, toks[i].Bytes, toks[i].Type, want[i])
		}
	}
}

func TestTokenizeAfter(t *testing.T) {
	toks, err := Tokenize([]byte("Vector2( 1, 2 )[\n]"))
	if err != nil {
		t.Fatal(err)
	}
	if toks[1].After != ' ' {
		t.Errorf("expected space after '(' got %q", toks[1].After)
	}
	if toks[6].After != '\n' {
		t.Errorf("expected newline after '[' got %q", toks[6].After)
	}
	if toks[7].After != 0 {
		t.Errorf("expected no byte after final token")
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{in: `"abc`, err: ErrUnterminated},
		{in: "a = #", err: ErrUnexpected},
		{in: "a = &b", err: ErrUnexpected},
		{in: "a = \xff", err: ErrBadUTF8},
	}
	for _, tt := range tests {
		_, err := Tokenize([]byte(tt.in))
		if !errors.Is(err, tt.err) {
			t.Errorf("Tokenize(%q): got %v want %v", tt.in, err, tt.err)
		}
	}
}

func TestPosLineCol(t *testing.T) {
	d := []byte("ab\ncd\n\nef")
	doc := NewPosDoc(d)
	tests := []struct {
		off, line, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 1, 0},
		{4, 1, 1},
		{7, 3, 0},
		{8, 3, 1},
	}
	for _, tt := range tests {
		l, c := doc.LineCol(tt.off)
		if l != tt.line || c != tt.col {
			t.Errorf("LineCol(%d) = %d,%d want %d,%d", tt.off, l, c, tt.line, tt.col)
		}
	}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
