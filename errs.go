package gdtext

import (
	"errors"

	"github.com/gdtext/gdtext/tree"
)

var (
	// ErrReference reports a resource reference with no matching
	// ext_resource or sub_resource section.
	ErrReference = errors.New("dangling resource reference")
	// ErrEditDone is returned when committing a tree edit twice.
	ErrEditDone      = errors.New("tree edit already committed")
	ErrNoLoader      = tree.ErrNoLoader
	ErrNoParentScene = tree.ErrNoParentScene
)
