package tree

import "errors"

var (
	// ErrTreeStructure reports node sections which do not form a tree: an
	// unresolved parent path, a second root, or an inheritance cycle.
	ErrTreeStructure = errors.New("tree structure error")
	// ErrTreeMutation reports an edit which is not allowed on an inherited
	// node.
	ErrTreeMutation = errors.New("tree mutation error")
	// ErrNoLoader is returned when a parent scene is needed but no loader
	// was given.
	ErrNoLoader = errors.New("no loader for parent scene")
	// ErrNoParentScene is returned when the root instances an ext_resource
	// which does not exist.
	ErrNoParentScene = errors.New("parent scene not found")
)
