package main

import (
	"bytes"
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Formatting re-encodes the document, which normalizes spacing between
// sections and around values written without a layout.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil {
		return nil, nil
	}
	buf := &bytes.Buffer{}
	if err := doc.file.Encode(buf); err != nil {
		return nil, err
	}
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	s.log.Debug("format", zap.String("uri", doc.uri), zap.Int("bytes", len(formatted)))
	return []protocol.TextEdit{{
		Range:   protocol.Range{End: endPosition(doc.content)},
		NewText: formatted,
	}}, nil
}
