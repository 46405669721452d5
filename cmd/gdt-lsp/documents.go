package main

import (
	"context"
	"strings"
	"sync"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/parse"
	"github.com/gdtext/gdtext/project"
	"github.com/gdtext/gdtext/section"
	"github.com/gdtext/gdtext/token"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32

	// file is nil when content does not parse; err says why.
	file     *gdtext.File
	err      error
	root     string
	values   map[*ir.Value]*token.Pos
	sections map[*section.Section]*token.Pos
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := parseDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func parseDocument(uri string, content string, version int32) *document {
	doc := &document{
		uri:      uri,
		content:  content,
		version:  version,
		values:   map[*ir.Value]*token.Pos{},
		sections: map[*section.Section]*token.Pos{},
	}
	secs, err := parse.Sections([]byte(content),
		parse.ParsePositions(doc.values),
		parse.ParseSectionPositions(doc.sections))
	if err != nil {
		doc.err = err
		return doc
	}
	doc.file = gdtext.NewFile(secs...)
	if !strings.HasPrefix(uri, "file:") {
		return doc
	}
	path := protocol.DocumentURI(uri).Filename()
	root, err := project.FindRoot(path)
	if err != nil || root == "" {
		return doc
	}
	// inside a Godot project parent scenes can be loaded
	doc.root = root
	opts := []gdtext.Option{gdtext.WithLoader(&project.FSLoader{Root: root})}
	if res, err := project.FileToRes(root, path); err == nil {
		opts = append(opts, gdtext.WithPath(res))
	}
	doc.file.SetOptions(opts...)
	return doc
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.log.Debug("open", zap.String("uri", uri))
	s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}
	s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// applyChange applies an incremental change. A zero range replaces the
// whole document.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	r := change.Range
	if r.Start.Line == 0 && r.Start.Character == 0 && r.End.Line == 0 && r.End.Character == 0 {
		return change.Text
	}
	start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
	end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
	if start > end {
		return content
	}
	return content[:start] + change.Text + content[end:]
}

// lineColToOffset maps a 0-based line and byte column to a byte offset,
// clamping to the end of the line or document.
func lineColToOffset(content string, line, col int) int {
	off := 0
	for i := 0; i < line; i++ {
		j := strings.IndexByte(content[off:], '\n')
		if j == -1 {
			return len(content)
		}
		off += j + 1
	}
	end := strings.IndexByte(content[off:], '\n')
	if end == -1 {
		end = len(content) - off
	}
	return off + min(col, end)
}

func toPosition(p *token.Pos) protocol.Position {
	l, c := p.LineCol()
	return protocol.Position{Line: uint32(l), Character: uint32(c)}
}
