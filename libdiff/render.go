package libdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type renderOpts struct {
	color bool
	equal bool
}

type RenderOption func(*renderOpts)

// RenderColor colors inserted, deleted and changed lines.
func RenderColor(v bool) RenderOption {
	return func(o *renderOpts) { o.color = v }
}

// RenderEqual also writes the headers of unchanged sections.
func RenderEqual(v bool) RenderOption {
	return func(o *renderOpts) { o.equal = v }
}

type painter struct {
	ops map[Op]func(a ...any) string
}

func newPainter(on bool) *painter {
	p := &painter{ops: map[Op]func(a ...any) string{}}
	if !on {
		return p
	}
	p.ops[Insert] = color.New(color.FgGreen).SprintFunc()
	p.ops[Delete] = color.New(color.FgRed).SprintFunc()
	p.ops[Change] = color.New(color.FgYellow).SprintFunc()
	p.ops[Equal] = color.New(color.Faint).SprintFunc()
	return p
}

func (p *painter) line(buf *bytes.Buffer, op Op, indent, text string) {
	s := op.Mark() + " " + indent + text
	if f := p.ops[op]; f != nil {
		s = f(s)
	}
	buf.WriteString(s)
	buf.WriteByte('\n')
}

// Write renders a script as marked lines: "+" inserted, "-" deleted and "~"
// changed.
func Write(w io.Writer, ds []SectionDiff, opts ...RenderOption) error {
	o := &renderOpts{}
	for _, f := range opts {
		f(o)
	}
	p := newPainter(o.color)
	buf := &bytes.Buffer{}
	for _, d := range ds {
		switch d.Op {
		case Equal:
			if o.equal {
				p.line(buf, Equal, "", header(d.From))
			}
		case Insert, Delete:
			s := d.To
			if d.Op == Delete {
				s = d.From
			}
			for _, l := range strings.Split(s.String(), "\n") {
				p.line(buf, d.Op, "", l)
			}
		case Change:
			p.line(buf, Change, "", header(d.To))
			for _, e := range d.Attrs {
				writeEntry(buf, p, "attr ", e)
			}
			for _, e := range d.Props {
				writeEntry(buf, p, "", e)
			}
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func header(s *section.Section) string {
	buf := &bytes.Buffer{}
	if err := encode.EncodeSection(s.Kind(), s.Header.Attrs.Entries(), nil, buf); err != nil {
		return "[" + s.Kind() + "]"
	}
	return buf.String()
}

func valueText(v *ir.Value) string {
	s, err := encode.String(v)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.Type, err)
	}
	return s
}

const indent = "    "

func writeEntry(buf *bytes.Buffer, p *painter, prefix string, e EntryDiff) {
	switch e.Op {
	case Insert:
		p.line(buf, Insert, indent, prefix+e.Key+" = "+valueText(e.To))
	case Delete:
		p.line(buf, Delete, indent, prefix+e.Key+" = "+valueText(e.From))
	case Change:
		a, aok := e.From.AsString()
		b, bok := e.To.AsString()
		if aok && bok && (strings.Contains(a, "\n") || strings.Contains(b, "\n")) {
			p.line(buf, Change, indent, prefix+e.Key+":")
			for _, l := range DiffLines(a, b) {
				p.line(buf, l.Op, indent+indent, l.Text)
			}
			return
		}
		p.line(buf, Change, indent, prefix+e.Key+" = "+valueText(e.From)+" -> "+valueText(e.To))
	}
}

// Line is one line of a line diff.
type Line struct {
	Op   Op
	Text string
}

// DiffLines diffs two texts line by line.
func DiffLines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: l})
		}
	}
	return res
}
