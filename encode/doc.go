// Package encode renders values of the ir package as text in the engine's
// scene and resource file grammar.
//
// Values which carry a recorded layout (those produced by the parser) are
// written the way they were read. Values built in code are written in the
// padded style of format=2 files, or in the compact style of format=3 files
// when EncodeCompact(true) is given.
package encode
