package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/token"
)

type EncState struct {
	compact bool
	Color   func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes v to w. No trailing newline is written.
func Encode(v *ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	buf := &bytes.Buffer{}
	if err := encode(v, buf, es); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// String returns the text of v.
func String(v *ir.Value, opts ...EncodeOption) (string, error) {
	buf := &bytes.Buffer{}
	if err := Encode(v, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func encode(v *ir.Value, w *bytes.Buffer, es *EncState) error {
	if v == nil {
		w.WriteString(es.color(ir.NullType, ValueColor, "null"))
		return nil
	}
	switch v.Type {
	case ir.NullType:
		w.WriteString(es.color(v.Type, ValueColor, "null"))
	case ir.BoolType:
		w.WriteString(es.color(v.Type, ValueColor, strconv.FormatBool(v.Bool)))
	case ir.NumberType:
		w.WriteString(es.color(v.Type, ValueColor, NumberText(v)))
	case ir.StringType:
		w.WriteString(es.color(v.Type, ValueColor, QuotedText(v)))
	case ir.StringNameType:
		w.WriteString(es.color(v.Type, ValueColor, "&"+QuotedText(v)))
	case ir.ArrayType:
		return encodeArray(v, w, es)
	case ir.MapType:
		return encodeMap(v, w, es)
	case ir.LiteralType:
		w.WriteString(es.color(v.Type, NameColor, v.Name))
		return encodeSeq(v.Values, es.layout(v, false), "(", ")", v.Type, w, es)
	case ir.TypedArrayType:
		if len(v.Values) != 1 || v.Values[0].Type != ir.ArrayType {
			return fmt.Errorf("typed array %s without an element list", v.Name)
		}
		w.WriteString(es.color(v.Type, NameColor, "Array["+v.Name+"]"))
		w.WriteString(es.color(v.Type, SepColor, "("))
		if err := encodeArray(v.Values[0], w, es); err != nil {
			return err
		}
		w.WriteString(es.color(v.Type, SepColor, ")"))
	default:
		return fmt.Errorf("cannot encode value of type %s", v.Type)
	}
	return nil
}

// NumberText returns the source text of a number, or its shortest
// rendering for numbers built in code.
func NumberText(v *ir.Value) string {
	if v.Number != "" {
		return v.Number
	}
	if v.Int64 != nil {
		return strconv.FormatInt(*v.Int64, 10)
	}
	if v.Float64 != nil {
		return ir.FormatFloat(*v.Float64)
	}
	return "0"
}

// QuotedText returns the quoted form of a string, reusing the source
// quoting while it still matches the decoded text.
func QuotedText(v *ir.Value) string {
	if v.Quoted != "" && token.QuotedToString([]byte(v.Quoted)) == v.String {
		return v.Quoted
	}
	return token.Quote(v.String)
}

// layout returns the recorded layout of v or the default one.
func (es *EncState) layout(v *ir.Value, isMap bool) ir.Layout {
	if v.Layout.Has(ir.LayoutKnown) {
		return v.Layout
	}
	if isMap {
		return ir.LayoutKnown | ir.LayoutMultiline
	}
	if es.compact {
		return ir.LayoutKnown
	}
	return ir.LayoutKnown | ir.LayoutPadded
}

func encodeArray(v *ir.Value, w *bytes.Buffer, es *EncState) error {
	return encodeSeq(v.Values, es.layout(v, false), "[", "]", v.Type, w, es)
}

func encodeSeq(vs []*ir.Value, l ir.Layout, open, close string, t ir.Type, w *bytes.Buffer, es *EncState) error {
	w.WriteString(es.color(t, SepColor, open))
	if l.Has(ir.LayoutMultiline) {
		w.WriteByte('\n')
		for i, e := range vs {
			if err := encode(e, w, es); err != nil {
				return err
			}
			if i < len(vs)-1 || l.Has(ir.LayoutTrailingComma) {
				w.WriteString(es.color(t, SepColor, ","))
			}
			w.WriteByte('\n')
		}
		w.WriteString(es.color(t, SepColor, close))
		return nil
	}
	pad := l.Has(ir.LayoutPadded)
	if pad {
		w.WriteByte(' ')
	}
	for i, e := range vs {
		if i > 0 {
			w.WriteString(es.color(t, SepColor, ","))
			w.WriteByte(' ')
		}
		if err := encode(e, w, es); err != nil {
			return err
		}
	}
	if l.Has(ir.LayoutTrailingComma) && len(vs) > 0 {
		w.WriteString(es.color(t, SepColor, ","))
	}
	if pad {
		w.WriteByte(' ')
	}
	w.WriteString(es.color(t, SepColor, close))
	return nil
}

func encodeMap(v *ir.Value, w *bytes.Buffer, es *EncState) error {
	l := es.layout(v, true)
	if len(v.Fields) == 0 && !v.Layout.Has(ir.LayoutKnown) && es.compact {
		l = ir.LayoutKnown
	}
	sep := ", "
	if l.Has(ir.LayoutMultiline) {
		sep = ",\n"
	}
	w.WriteString(es.color(v.Type, SepColor, "{"))
	switch {
	case l.Has(ir.LayoutMultiline):
		w.WriteByte('\n')
	case l.Has(ir.LayoutPadded):
		w.WriteByte(' ')
	}
	for i, f := range v.Fields {
		if i > 0 {
			w.WriteString(es.color(v.Type, SepColor, strings.TrimRight(sep, " \n")))
			w.WriteString(sep[1:])
		}
		var key string
		switch f.Type {
		case ir.StringNameType:
			key = "&" + QuotedText(f)
		case ir.StringType:
			key = QuotedText(f)
		default:
			return fmt.Errorf("map key of type %s", f.Type)
		}
		w.WriteString(es.color(v.Type, FieldColor, key))
		w.WriteString(es.color(v.Type, SepColor, ":"))
		w.WriteByte(' ')
		if err := encode(v.Values[i], w, es); err != nil {
			return err
		}
	}
	if l.Has(ir.LayoutTrailingComma) && len(v.Fields) > 0 {
		w.WriteString(es.color(v.Type, SepColor, ","))
	}
	switch {
	case l.Has(ir.LayoutMultiline):
		if len(v.Fields) > 0 {
			w.WriteByte('\n')
		}
	case l.Has(ir.LayoutPadded):
		w.WriteByte(' ')
	}
	w.WriteString(es.color(v.Type, SepColor, "}"))
	return nil
}
