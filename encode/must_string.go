package encode

import (
	"github.com/gdtext/gdtext/ir"
)

// MustString is String for values known to encode, such as those returned
// by the parser.
func MustString(v *ir.Value, opts ...EncodeOption) string {
	s, err := String(v, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
