package section

import "slices"

const (
	KindScene        = "gd_scene"
	KindResource     = "gd_resource"
	KindExtResource  = "ext_resource"
	KindSubResource  = "sub_resource"
	KindResourceBody = "resource"
	KindNode         = "node"
	KindConnection   = "connection"
	KindEditable     = "editable"
)

var kindOrder = []string{
	KindScene,
	KindResource,
	KindExtResource,
	KindSubResource,
	KindResourceBody,
	KindNode,
	KindConnection,
	KindEditable,
}

// Order returns the position of kind in the canonical section order. Kinds
// outside that order report false.
func Order(kind string) (int, bool) {
	i := slices.Index(kindOrder, kind)
	if i == -1 {
		return 0, false
	}
	// gd_scene and gd_resource share the first slot
	if i == 1 {
		i = 0
	}
	return i, true
}

// Kinds returns the known section kinds in canonical order.
func Kinds() []string {
	return slices.Clone(kindOrder)
}
