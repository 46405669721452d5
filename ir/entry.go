package ir

// Entry is a keyed value of a section header or body.
type Entry struct {
	Key   string
	Value *Value
}
