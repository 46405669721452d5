// Package ir provides the value representation for engine text scene and
// resource files.
//
// # Values
//
// Every property and header attribute value is an *ir.Value, a recursive
// tagged union in which the Type field selects which other fields are in use:
//
//   - NullType: null
//   - BoolType: true, false
//   - NumberType: integers and floats, with the source text kept in Number
//   - StringType: "quoted text"
//   - StringNameType: &"name"
//   - ArrayType: [ a, b ]
//   - MapType: { "key": value }, insertion ordered
//   - LiteralType: Name( args ), for instance Vector2( 1, 2 )
//   - TypedArrayType: Array[int]([1, 2])
//
// # Literals
//
// Literal names are checked against a registry populated at init with the
// engine's well known constructors (Vector2, Vector3, Color, NodePath,
// ExtResource, SubResource). Registered literals are validated on
// construction; anything else is kept as a generic literal. Typed views such
// as Vector2 and ExtResource wrap a literal Value and read and write its
// argument slice directly, so edits through a view show up on output.
//
// # Layout
//
// Values produced by the parser carry a Layout describing padding and line
// breaks so that unmodified input is reproduced exactly.
package ir
