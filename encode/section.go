package encode

import (
	"bytes"
	"io"

	"github.com/gdtext/gdtext/ir"
)

// EncodeSection writes a section: the header [name k=v ...] followed by one
// "key = value" line per property. The last line is not terminated.
func EncodeSection(name string, attrs, props []ir.Entry, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	buf := &bytes.Buffer{}
	buf.WriteString(es.color(ir.NullType, SepColor, "["))
	buf.WriteString(es.color(ir.NullType, SectionColor, name))
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(es.color(ir.NullType, FieldColor, a.Key))
		buf.WriteString(es.color(ir.NullType, SepColor, "="))
		if err := encode(a.Value, buf, es); err != nil {
			return err
		}
	}
	buf.WriteString(es.color(ir.NullType, SepColor, "]"))
	for _, p := range props {
		buf.WriteByte('\n')
		buf.WriteString(es.color(ir.NullType, FieldColor, p.Key))
		buf.WriteString(" ")
		buf.WriteString(es.color(ir.NullType, SepColor, "="))
		buf.WriteString(" ")
		if err := encode(p.Value, buf, es); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
