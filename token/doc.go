// Package token provides tokenization support for Godot text scene and
// resource files (.tscn, .tres).
//
// [Tokenize] turns a document into a flat slice of [Token]s. Whitespace and
// `;` comments are dropped, but every token records the byte which follows it
// so that the parser can recover the layout of brackets and literals.
package token
