package encode

import (
	"testing"

	"github.com/gdtext/gdtext/ir"
)

func TestDefaults(t *testing.T) {
	m := ir.NewMap().Set("a", ir.FromInt(1)).Set("b", ir.FromStrings("x"))
	tests := []struct {
		name    string
		v       *ir.Value
		padded  string
		compact string
	}{
		{"vector", ir.NewVector2(1, 2.5).Value, "Vector2( 1, 2.5 )", "Vector2(1, 2.5)"},
		{"ref", ir.ExtRef(1).Value, "ExtResource( 1 )", "ExtResource(1)"},
		{"nodepath", ir.NewNodePath("a/b").Value, `NodePath("a/b")`, `NodePath("a/b")`},
		{"array", ir.FromStrings("a", "b"), `[ "a", "b" ]`, `["a", "b"]`},
		{"empty array", ir.FromSlice(nil), "[  ]", "[]"},
		{"empty literal", ir.GenericLiteral("Object"), "Object(  )", "Object()"},
		{"map", m, "{\n\"a\": 1,\n\"b\": [ \"x\" ]\n}", "{\n\"a\": 1,\n\"b\": [\"x\"]\n}"},
		{"empty map", ir.NewMap(), "{\n}", "{}"},
		{"string", ir.FromString(`say "hi"` + "\n"), "\"say \\\"hi\\\"\n\"", "\"say \\\"hi\\\"\n\""},
		{"string name", ir.FromStringName("idle"), `&"idle"`, `&"idle"`},
		{"typed", ir.FromTypedArray("int", []*ir.Value{ir.FromInt(1)}), "Array[int]([ 1 ])", "Array[int]([1])"},
		{"float", ir.FromFloat(1e-05), "1e-05", "1e-05"},
		{"null", ir.Null(), "null", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustString(tt.v); got != tt.padded {
				t.Errorf("padded: got %q want %q", got, tt.padded)
			}
			if got := MustString(tt.v, EncodeCompact(true)); got != tt.compact {
				t.Errorf("compact: got %q want %q", got, tt.compact)
			}
		})
	}
}

func TestQuotedReuse(t *testing.T) {
	v := &ir.Value{Type: ir.StringType, String: "a/b", Quoted: `"a\/b"`}
	if got := MustString(v); got != `"a\/b"` {
		t.Errorf("source quoting lost: %s", got)
	}
	v.SetString("c")
	if got := MustString(v); got != `"c"` {
		t.Errorf("stale source quoting: %s", got)
	}
}

func TestEncodeColors(t *testing.T) {
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.NumberType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	got := MustString(ir.NewVector2(1, 2).Value, EncodeColors(c))
	if got != "Vector2( <1>, <2> )" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeSection(t *testing.T) {
	attrs := []ir.Entry{{Key: "type", Value: ir.FromString("Theme")}, {Key: "format", Value: ir.FromInt(2)}}
	props := []ir.Entry{{Key: "a", Value: ir.FromBool(true)}}
	got, err := sectionString("gd_resource", attrs, props)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[gd_resource type=\"Theme\" format=2]\na = true"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func sectionString(name string, attrs, props []ir.Entry) (string, error) {
	buf := &stringWriter{}
	err := EncodeSection(name, attrs, props, buf)
	return buf.s, err
}

type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}
