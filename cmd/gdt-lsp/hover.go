package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/project"
	"github.com/gdtext/gdtext/section"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil {
		return nil, nil
	}
	line, col := int(params.Position.Line), int(params.Position.Character)
	text := ""
	if r, ok := refAt(doc, line, col); ok {
		text = refHoverText(doc.file, r)
	} else if v := valueAt(doc, line, col); v != nil {
		text = valueHoverText(v)
	}
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
	}, nil
}

// Definition goes from a resource reference to the section it names, and
// from a res:// path to the file.
func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil {
		return nil, nil
	}
	line, col := int(params.Position.Line), int(params.Position.Character)
	if r, ok := refAt(doc, line, col); ok {
		target := doc.file.Resolve(r.Reference)
		if target == nil || doc.sections[target] == nil {
			return nil, nil
		}
		start := toPosition(doc.sections[target])
		return []protocol.Location{{
			URI:   protocol.DocumentURI(doc.uri),
			Range: protocol.Range{Start: start, End: start},
		}}, nil
	}
	v := valueAt(doc, line, col)
	res, ok := v.AsString()
	if !ok || doc.root == "" || !strings.HasPrefix(res, project.Scheme) {
		return nil, nil
	}
	path, err := project.ResToFile(doc.root, res)
	if err != nil {
		return nil, nil
	}
	return []protocol.Location{{URI: uri.File(path)}}, nil
}

// valueAt returns the value starting closest before line and col, on the
// same line.
func valueAt(doc *document, line, col int) *ir.Value {
	var best *ir.Value
	bestCol := -1
	for v, p := range doc.values {
		l, c := p.LineCol()
		if l != line || c > col || c <= bestCol {
			continue
		}
		best, bestCol = v, c
	}
	return best
}

// refAt returns the reference whose text spans line and col.
func refAt(doc *document, line, col int) (gdtext.Ref, bool) {
	for _, r := range doc.file.References() {
		p := doc.values[r.Value]
		if p == nil {
			continue
		}
		l, c := p.LineCol()
		if l != line || c > col {
			continue
		}
		end := strings.IndexByte(doc.content[p.I:], ')')
		if end != -1 && col <= c+end {
			return r, true
		}
	}
	return gdtext.Ref{}, false
}

func refHoverText(f *gdtext.File, r gdtext.Ref) string {
	target := f.Resolve(r.Reference)
	if target == nil {
		return fmt.Sprintf("**%s** `%s` refers to no section", r.Kind(), r.IDKey())
	}
	parts := []string{fmt.Sprintf("**%s** `%s`", r.Kind(), r.IDKey())}
	switch target.Kind() {
	case section.KindExtResource:
		e, _ := section.AsExtResource(target)
		parts = append(parts, fmt.Sprintf("**Type:** %s", e.Type()), fmt.Sprintf("**Path:** `%s`", e.Path()))
	case section.KindSubResource:
		sr, _ := section.AsSubResource(target)
		parts = append(parts, fmt.Sprintf("**Type:** %s", sr.Type()))
		if target.Props.Len() > 0 {
			parts = append(parts, "```\n"+propsText(target)+"\n```")
		}
	}
	return strings.Join(parts, "\n\n")
}

// propsText renders up to a screenful of properties.
func propsText(s *section.Section) string {
	const maxLines = 20
	var lines []string
	for k, v := range s.Props.All() {
		if len(lines) == maxLines {
			lines = append(lines, "...")
			break
		}
		lines = append(lines, k+" = "+encode.MustString(v))
	}
	return strings.Join(lines, "\n")
}

func valueHoverText(v *ir.Value) string {
	typ := v.Type.String()
	switch v.Type {
	case ir.LiteralType:
		typ = v.Name
	case ir.TypedArrayType:
		typ = "Array[" + v.Name + "]"
	case ir.NumberType:
		typ = "float"
		if v.IsInt() {
			typ = "int"
		}
	}
	parts := []string{fmt.Sprintf("**Type:** %s", typ)}
	switch v.Type {
	case ir.ArrayType, ir.TypedArrayType:
		parts = append(parts, fmt.Sprintf("%d elements", len(v.Elements())))
	case ir.MapType:
		parts = append(parts, fmt.Sprintf("%d keys", len(v.Fields)))
	case ir.StringType, ir.StringNameType:
		val := v.String
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", val))
	default:
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", encode.MustString(v)))
	}
	return strings.Join(parts, "\n\n")
}
