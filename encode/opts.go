package encode

type EncodeOption func(*EncState)

// EncodeCompact selects the format=3 style, Vector2(1, 2) and [1, 2], for
// values without a recorded layout.
func EncodeCompact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// CompactFor reports whether files of the given format number use the
// compact style.
func CompactFor(format int64) bool {
	return format >= 3
}
