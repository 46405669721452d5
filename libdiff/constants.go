package libdiff

// Op is the kind of a difference.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
	Change
)

func (op Op) String() string {
	switch op {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Change:
		return "change"
	}
	return "<unknown op>"
}

// Mark is the prefix of a rendered line.
func (op Op) Mark() string {
	switch op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Change:
		return "~"
	}
	return " "
}
