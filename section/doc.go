// Package section models the bracketed sections of scene and resource
// files.
//
// A Section is a header, [kind key=value ...], followed by an ordered list of
// "key = value" properties. Header attributes and properties are both kept
// in insertion order. Typed views (ExtResource, SubResource, Node, Resource)
// give named access to the attributes of the well known kinds; they share
// the underlying Section, so writes through a view change its output.
package section
