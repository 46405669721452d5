package section

import "errors"

// ErrStructure reports a malformed section, such as an ext_resource with a
// property body or a node with both a type and an instance.
var ErrStructure = errors.New("structure error")
