package libdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdtext/gdtext/parse"
	"github.com/gdtext/gdtext/section"
	"github.com/google/go-cmp/cmp"
)

const before = `[gd_scene load_steps=3 format=2]

[ext_resource path="res://a.png" type="Texture" id=1]

[ext_resource path="res://b.png" type="Texture" id=2]

[node name="Root" type="Node2D"]
position = Vector2( 1, 2 )
texture = ExtResource( 1 )
text = "one
two
three"

[node name="Child" type="Sprite" parent="."]
`

const after = `[gd_scene load_steps=2 format=2]

[ext_resource path="res://a.png" type="Texture" id=1]

[node name="Root" type="Node2D"]
texture = ExtResource( 1 )
text = "one
2
three"
visible = false
position = Vector2( 1, 3 )

[node name="Child" type="Sprite" parent="."]

[node name="New" type="Node" parent="Child"]
`

func sections(t *testing.T, text string) []*section.Section {
	t.Helper()
	secs, err := parse.Sections([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	return secs
}

func render(secs []*section.Section) string {
	var parts []string
	for _, s := range secs {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func TestSections(t *testing.T) {
	ds := Sections(sections(t, before), sections(t, after))
	var ops []string
	for _, d := range ds {
		ops = append(ops, d.Op.String())
	}
	want := []string{"change", "equal", "delete", "change", "equal", "insert"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
	if !Changed(ds) {
		t.Errorf("expected changes")
	}
	root := ds[3]
	var keys []string
	for _, e := range root.Props {
		keys = append(keys, e.Op.String()+" "+e.Key)
	}
	wantKeys := []string{"delete position", "change text", "insert visible", "insert position"}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("props (-want +got):\n%s", diff)
	}
}

func TestApplyAndReverse(t *testing.T) {
	from, to := sections(t, before), sections(t, after)
	ds := Sections(from, to)
	got, err := Apply(from, ds)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(after, render(got)); diff != "" {
		t.Errorf("apply (-want +got):\n%s", diff)
	}
	back, err := Apply(to, Reverse(ds))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, render(back)); diff != "" {
		t.Errorf("reverse (-want +got):\n%s", diff)
	}
	if render(from) != before {
		t.Errorf("Apply modified its input")
	}
	if _, err := Apply(to, ds); err == nil {
		t.Errorf("expected an error applying to the wrong sections")
	}
}

func TestNoChanges(t *testing.T) {
	ds := Sections(sections(t, before), sections(t, before))
	if Changed(ds) {
		t.Errorf("unexpected changes")
	}
	buf := &bytes.Buffer{}
	if err := Write(buf, ds); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("got %q", buf.String())
	}
}

func TestWrite(t *testing.T) {
	ds := Sections(sections(t, before), sections(t, after))
	buf := &bytes.Buffer{}
	if err := Write(buf, ds); err != nil {
		t.Fatal(err)
	}
	want := `~ [gd_scene load_steps=2 format=2]
~     attr load_steps = 3 -> 2
- [ext_resource path="res://b.png" type="Texture" id=2]
~ [node name="Root" type="Node2D"]
-     position = Vector2( 1, 2 )
~     text:
          one
-         two
+         2
          three
+     visible = false
+     position = Vector2( 1, 3 )
+ [node name="New" type="Node" parent="Child"]
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffLines(t *testing.T) {
	got := DiffLines("a\nb\nc\n", "a\nc\nd\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Equal, "c"},
		{Insert, "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
