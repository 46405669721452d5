// Package parse reads scene and resource text into sections and values.
//
// The grammar is parsed by recursive descent over the tokens produced by
// package token. At each value position the alternatives are tried in the
// order null, string, boolean, number, list, map, object literal and typed
// array; string names (&"name") are accepted wherever strings are.
//
// Any mismatch aborts the parse with a *SyntaxError carrying the line and
// column. Structural problems in otherwise well formed sections, such as an
// ext_resource with properties, are reported as section.ErrStructure unless
// ParsePermissive is given.
package parse
