package parse

import (
	"errors"
	"fmt"

	"github.com/gdtext/gdtext/token"
)

var (
	// ErrSyntax is matched by every SyntaxError.
	ErrSyntax = errors.New("syntax error")
	errEOF    = errors.New("unexpected end of input")
)

// SyntaxError is a grammar mismatch at a position. Line and Col are 1-based.
type SyntaxError struct {
	Err    error
	Offset int
	Line   int
	Col    int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %v", ErrSyntax, e.Line, e.Col, e.Err)
}

func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSyntax, e.Err}
}

func syntaxErr(err error, pos *token.Pos) *SyntaxError {
	l, c := pos.LineCol()
	return &SyntaxError{Err: err, Offset: pos.I, Line: l + 1, Col: c + 1}
}

func fromTokenizeErr(err error) error {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return syntaxErr(te, &te.Pos)
	}
	return err
}

// StructureError places a section.ErrStructure failure at the section's
// header.
type StructureError struct {
	Err    error
	Offset int
	Line   int
	Col    int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Col, e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}
