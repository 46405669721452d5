package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/parse"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const diagSource = "gdtext"

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validateDocument(doc)
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Version:     uint32(doc.version),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.log.Warn("publishing diagnostics", zap.String("uri", uri), zap.Error(err))
	}
}

// validateDocument reports parse errors, or for a parsed document the
// references which do not resolve and problems building its scene tree.
func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.file == nil {
		return append(diagnostics, errorDiagnostic(doc.err))
	}
	f := doc.file
	for _, r := range f.References() {
		if f.Resolve(r.Reference) != nil {
			continue
		}
		d := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagSource,
			Message:  fmt.Sprintf("%s(%s) refers to no section", r.Kind(), r.IDKey()),
		}
		if p := doc.values[r.Value]; p != nil {
			start := toPosition(p)
			d.Range = protocol.Range{Start: start, End: start}
		}
		diagnostics = append(diagnostics, d)
	}
	if f.Type() == gdtext.SceneFile {
		if _, err := f.EditTree(); err != nil && !errors.Is(err, gdtext.ErrNoLoader) {
			d := protocol.Diagnostic{
				Severity: protocol.DiagnosticSeverityWarning,
				Source:   diagSource,
				Message:  err.Error(),
			}
			if nodes := f.Nodes(); len(nodes) > 0 {
				if p := doc.sections[nodes[0].Section]; p != nil {
					start := toPosition(p)
					d.Range = protocol.Range{Start: start, End: start}
				}
			}
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

func errorDiagnostic(err error) protocol.Diagnostic {
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Source:   diagSource,
		Message:  err.Error(),
	}
	line, col := 0, 0
	var se *parse.SyntaxError
	var ste *parse.StructureError
	switch {
	case errors.As(err, &se):
		line, col = se.Line-1, se.Col-1
	case errors.As(err, &ste):
		line, col = ste.Line-1, ste.Col-1
	}
	d.Range = protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
	}
	return d
}
