package main

import (
	"context"
	"strings"

	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	"go.lsp.dev/protocol"
)

// DocumentSymbol outlines the document as its sections, each holding its
// properties.
func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil {
		return nil, nil
	}
	var res []interface{}
	for _, sym := range documentSymbols(doc) {
		res = append(res, sym)
	}
	return res, nil
}

func documentSymbols(doc *document) []protocol.DocumentSymbol {
	secs := doc.file.Sections()
	end := endPosition(doc.content)
	var res []protocol.DocumentSymbol
	for i, s := range secs {
		p := doc.sections[s]
		if p == nil {
			continue
		}
		start := toPosition(p)
		stop := end
		if i+1 < len(secs) && doc.sections[secs[i+1]] != nil {
			stop = toPosition(doc.sections[secs[i+1]])
		}
		name, detail, kind := describe(s)
		sym := protocol.DocumentSymbol{
			Name:           name,
			Detail:         detail,
			Kind:           kind,
			Range:          protocol.Range{Start: start, End: stop},
			SelectionRange: protocol.Range{Start: start, End: start},
		}
		for k, v := range s.Props.All() {
			vp := doc.values[v]
			if vp == nil {
				continue
			}
			at := toPosition(vp)
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           k,
				Detail:         v.Type.String(),
				Kind:           protocol.SymbolKindProperty,
				Range:          protocol.Range{Start: at, End: at},
				SelectionRange: protocol.Range{Start: at, End: at},
			})
		}
		res = append(res, sym)
	}
	return res
}

func describe(s *section.Section) (string, string, protocol.SymbolKind) {
	switch s.Kind() {
	case section.KindNode:
		n, _ := section.AsNode(s)
		name := n.Name()
		if p, ok := n.Parent(); ok && p != "." {
			name = p + "/" + name
		}
		typ, _ := n.Type()
		if id, ok := n.Instance(); ok {
			typ = "instance " + ir.IDKey(id)
		}
		return name, typ, protocol.SymbolKindObject
	case section.KindExtResource:
		e, _ := section.AsExtResource(s)
		return "ExtResource " + e.IDKey(), e.Path(), protocol.SymbolKindFile
	case section.KindSubResource:
		r, _ := section.AsSubResource(s)
		return "SubResource " + r.IDKey(), r.Type(), protocol.SymbolKindStruct
	case section.KindConnection:
		sig, _ := s.StringAttr("signal")
		method, _ := s.StringAttr("method")
		return s.Kind() + " " + sig, method, protocol.SymbolKindEvent
	case section.KindScene, section.KindResource:
		detail := ""
		if f := s.Attr("format"); f != nil {
			detail = "format " + encode.MustString(f)
		}
		return s.Kind(), detail, protocol.SymbolKindModule
	}
	return s.Kind(), "", protocol.SymbolKindStruct
}

func endPosition(content string) protocol.Position {
	line := strings.Count(content, "\n")
	col := len(content) - strings.LastIndexByte(content, '\n') - 1
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}
