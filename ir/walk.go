package ir

// Walk calls fn on v and then, depth first, on every value nested in it:
// array and typed array elements, map values and literal arguments. Map keys
// are not visited. If fn returns false the children of that value are
// skipped.
func Walk(v *Value, fn func(*Value) bool) {
	if v == nil {
		return
	}
	if !fn(v) || v.Type.IsLeaf() {
		return
	}
	for _, c := range v.Values {
		Walk(c, fn)
	}
}
