package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/section"

	"go.lsp.dev/protocol"
)

// Completion offers section kinds at the start of a header, and otherwise
// references to the document's resources and literal constructors.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := lineColToOffset(doc.content, int(params.Position.Line), int(params.Position.Character))
	lineStart := strings.LastIndexByte(doc.content[:off], '\n') + 1
	prefix := doc.content[lineStart:off]
	return &protocol.CompletionList{Items: completions(doc.file, prefix)}, nil
}

func completions(f *gdtext.File, prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	if strings.HasPrefix(prefix, "[") && !strings.ContainsAny(prefix, " =") {
		for _, k := range section.Kinds() {
			items = append(items, protocol.CompletionItem{
				Label: k,
				Kind:  protocol.CompletionItemKindKeyword,
			})
		}
		return items
	}
	if f != nil {
		opts := []encode.EncodeOption{encode.EncodeCompact(encode.CompactFor(f.Format()))}
		for _, e := range f.ExtResources() {
			items = append(items, protocol.CompletionItem{
				Label:  encode.MustString(e.Reference().Value, opts...),
				Kind:   protocol.CompletionItemKindReference,
				Detail: fmt.Sprintf("%s %s", e.Type(), e.Path()),
			})
		}
		for _, r := range f.SubResources() {
			items = append(items, protocol.CompletionItem{
				Label:  encode.MustString(r.Reference().Value, opts...),
				Kind:   protocol.CompletionItemKindReference,
				Detail: r.Type(),
			})
		}
	}
	for _, name := range ir.Registered() {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  protocol.CompletionItemKindConstructor,
		})
	}
	return items
}
