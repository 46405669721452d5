package encode

import (
	"strings"

	"github.com/gdtext/gdtext/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	FieldColor
	SepColor
	NameColor
	SectionColor
	CommentColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		able := Colorable{Type: t, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = CommentColor
		colors.Map[able] = color.BlueString
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = ir.StringNameType
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	able.Type = ir.MapType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Type = ir.LiteralType
	able.Attr = NameColor
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Type = ir.TypedArrayType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	// section headers and property keys are colored under NullType, which
	// has no field or name of its own.
	able.Type = ir.NullType
	able.Attr = SectionColor
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
