// Package gdtext reads, edits and writes the engine's text scene (.tscn) and
// resource (.tres) files.
//
// A File is an ordered list of sections. Parse and Load build one from text,
// NewScene and NewResource start an empty one. Sections are added in
// canonical kind order and the load_steps header attribute is kept in step
// with the resources a file declares.
//
// Node sections form a scene tree, which is edited through a scope:
//
//	err := f.UseTree(func(t *tree.Tree) error {
//		t.SetRoot(tree.New("Root", "Node2D"))
//		return nil
//	})
//
// The file's node sections are replaced only when the function returns nil.
package gdtext
