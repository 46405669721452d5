package main

import (
	"testing"

	"github.com/gdtext/gdtext/section"
	"github.com/google/go-cmp/cmp"

	"go.lsp.dev/protocol"
)

const scene = `[gd_scene load_steps=2 format=2]

[ext_resource path="res://a.gd" type="Script" id=1]

[node name="A" type="Node"]
script = ExtResource( 2 )
`

func TestLineColToOffset(t *testing.T) {
	content := "ab\ncd\n"
	tests := []struct {
		line, col, off int
	}{
		{0, 0, 0},
		{0, 5, 2},
		{1, 1, 4},
		{2, 0, 6},
		{5, 0, 6},
	}
	for _, tt := range tests {
		if got := lineColToOffset(content, tt.line, tt.col); got != tt.off {
			t.Errorf("lineColToOffset(%d, %d) = %d want %d", tt.line, tt.col, got, tt.off)
		}
	}
}

func TestApplyChange(t *testing.T) {
	content := "a = 1\nb = 2\n"
	got := applyChange(content, protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 4},
			End:   protocol.Position{Line: 1, Character: 5},
		},
		Text: "3",
	})
	if got != "a = 1\nb = 3\n" {
		t.Errorf("got %q", got)
	}
	got = applyChange(content, protocol.TextDocumentContentChangeEvent{Text: "c = 4\n"})
	if got != "c = 4\n" {
		t.Errorf("full replace: got %q", got)
	}
}

func TestCollectSemanticTokens(t *testing.T) {
	content := "[node name=\"A\" type=\"Node\"]\n; note\nx = Vector2( 1, 2 )\n"
	want := []semToken{
		{line: 0, char: 1, length: 4, typ: semKeyword, mods: 1},
		{line: 0, char: 6, length: 4, typ: semProperty},
		{line: 0, char: 10, length: 1, typ: semOperator},
		{line: 0, char: 11, length: 3, typ: semString},
		{line: 0, char: 15, length: 4, typ: semProperty},
		{line: 0, char: 19, length: 1, typ: semOperator},
		{line: 0, char: 20, length: 6, typ: semString},
		{line: 1, char: 0, length: 6, typ: semComment},
		{line: 2, char: 0, length: 1, typ: semProperty},
		{line: 2, char: 2, length: 1, typ: semOperator},
		{line: 2, char: 4, length: 7, typ: semType},
		{line: 2, char: 13, length: 1, typ: semNumber},
		{line: 2, char: 14, length: 1, typ: semOperator},
		{line: 2, char: 16, length: 1, typ: semNumber},
	}
	got := collectSemanticTokens(content)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(semToken{})); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
}

func TestEncodeTokens(t *testing.T) {
	got := encodeTokens([]semToken{
		{line: 0, char: 1, length: 4, typ: semKeyword, mods: 1},
		{line: 0, char: 6, length: 4, typ: semProperty},
		{line: 2, char: 3, length: 1, typ: semNumber},
	})
	want := []uint32{
		0, 1, 4, semKeyword, 1,
		0, 5, 4, semProperty, 0,
		2, 3, 1, semNumber, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("data (-want +got):\n%s", diff)
	}
}

func TestValidateDocument(t *testing.T) {
	doc := parseDocument("untitled:scene", scene, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	ds := validateDocument(doc)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics want 1: %v", len(ds), ds)
	}
	if ds[0].Message != "ExtResource(2) refers to no section" {
		t.Errorf("message %q", ds[0].Message)
	}
	if start := ds[0].Range.Start; start.Line != 5 || start.Character != 9 {
		t.Errorf("range starts at %d:%d", start.Line, start.Character)
	}

	bad := parseDocument("untitled:bad", "[node name=\"A\"\nx = 1\n", 1)
	if bad.file != nil {
		t.Fatal("expected parse failure")
	}
	ds = validateDocument(bad)
	if len(ds) != 1 || ds[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("got %v", ds)
	}
}

func TestRefAt(t *testing.T) {
	doc := parseDocument("untitled:scene", scene, 1)
	r, ok := refAt(doc, 5, 12)
	if !ok {
		t.Fatal("no reference at 5:12")
	}
	if r.IDKey() != "2" {
		t.Errorf("got id %q", r.IDKey())
	}
	if _, ok := refAt(doc, 5, 2); ok {
		t.Errorf("found a reference at a property name")
	}
}

func TestDocumentSymbols(t *testing.T) {
	doc := parseDocument("untitled:scene", scene, 1)
	syms := documentSymbols(doc)
	type sym struct {
		Name, Detail string
		Kind         protocol.SymbolKind
		Children     int
	}
	var got []sym
	for _, s := range syms {
		got = append(got, sym{s.Name, s.Detail, s.Kind, len(s.Children)})
	}
	want := []sym{
		{"gd_scene", "format 2", protocol.SymbolKindModule, 0},
		{"ExtResource 1", "res://a.gd", protocol.SymbolKindFile, 0},
		{"A", "Node", protocol.SymbolKindObject, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("symbols (-want +got):\n%s", diff)
	}
	if end := syms[0].Range.End; end.Line != 2 || end.Character != 0 {
		t.Errorf("header range ends at %d:%d", end.Line, end.Character)
	}
	if end := syms[2].Range.End; end.Line != 6 || end.Character != 0 {
		t.Errorf("last range ends at %d:%d", end.Line, end.Character)
	}
}

func TestCompletions(t *testing.T) {
	items := completions(nil, "[")
	if len(items) != len(section.Kinds()) || items[0].Label != section.KindScene {
		t.Errorf("header completions: %v", items)
	}
	doc := parseDocument("untitled:scene", scene, 1)
	items = completions(doc.file, "script = ")
	if len(items) == 0 || items[0].Label != "ExtResource( 1 )" {
		t.Errorf("value completions start with %v", items)
	}
}
