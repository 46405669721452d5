package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/project"
	"github.com/gdtext/gdtext/query"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
)

const playerScene = `[gd_scene load_steps=3 format=2]

[ext_resource path="res://Player.gd" type="Script" id=1]

[sub_resource type="CircleShape2D" id=1]
radius = 12.5

[node name="Player" type="KinematicBody2D"]
script = ExtResource( 1 )
position = Vector2( 10, -2.5 )

[node name="Shape" type="CollisionShape2D" parent="."]
shape = SubResource( 1 )
`

const rootScene = `[gd_scene load_steps=1 format=2]

[node name="Root" type="KinematicBody2D"]

[node name="Sprite" type="Sprite" parent="."]

[node name="Health" type="Control" parent="."]
pause_mode = 1
`

const midScene = `[gd_scene load_steps=2 format=2]

[ext_resource path="res://Root.tscn" type="PackedScene" id=1]

[node name="Mid" instance=ExtResource( 1 )]

[node name="Health" parent="."]
pause_mode = 2
`

var scenes = project.MapLoader{"res://Root.tscn": rootScene}

func mustParse(t *testing.T, text string, opts ...gdtext.Option) *gdtext.File {
	t.Helper()
	f, err := gdtext.Parse([]byte(text), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCheckLoaded(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "clean", in: playerScene},
		{
			name: "dangling",
			in:   strings.Replace(playerScene, "ExtResource( 1 )\n", "ExtResource( 2 )\n", 1),
			want: []string{"dangling ExtResource(2) in node script"},
		},
		{
			name: "spacing",
			in:   "[gd_scene load_steps=1 format=2]\n\n\n[node name=\"A\" type=\"Node\"]\n",
			want: []string{`line 3: "" re-encodes as "[node name=\"A\" type=\"Node\"]"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, tt.in)
			got := checkLoaded(f, []byte(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{a: "x\ny\n", b: "x\ny\n"},
		{a: "x\ny", b: "x\ny\n", want: `line 3: re-encoding adds ""`},
		{a: "x\ny\n", b: "x\ny", want: `line 3: re-encoding drops ""`},
		{a: "x\ny\n", b: "x\nz\n", want: `line 2: "y" re-encodes as "z"`},
	}
	for _, tt := range tests {
		got, ok := firstDiff(tt.a, tt.b)
		if ok != (tt.want != "") || got != tt.want {
			t.Errorf("firstDiff(%q, %q) = %q, %t want %q", tt.a, tt.b, got, ok, tt.want)
		}
	}
}

func TestWriteTree(t *testing.T) {
	tests := []struct {
		name string
		f    *gdtext.File
		want string
	}{
		{
			name: "plain",
			f:    mustParse(t, playerScene),
			want: ". (KinematicBody2D)\nShape (CollisionShape2D)\n",
		},
		{
			name: "inherited",
			f:    mustParse(t, midScene, gdtext.WithLoader(scenes)),
			want: ". (KinematicBody2D)\nSprite (Sprite) [inherited]\nHealth (Control) [inherited]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.f.EditTree()
			if err != nil {
				t.Fatal(err)
			}
			buf := &bytes.Buffer{}
			if err := writeTree(buf, e.Tree(), true); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetArg(t *testing.T) {
	f := mustParse(t, midScene, gdtext.WithLoader(scenes))
	tests := []struct {
		sel  string
		want string
	}{
		{sel: "Health:pause_mode", want: "2\n"},
		{sel: "Health", want: "; Health (Control)\npause_mode = 2\n"},
	}
	for _, tt := range tests {
		buf := &bytes.Buffer{}
		if err := getArg(buf, f, tt.sel); err != nil {
			t.Errorf("%s: %v", tt.sel, err)
			continue
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("%s: got %q want %q", tt.sel, got, tt.want)
		}
	}
	for _, sel := range []string{"Missing", "Health:missing"} {
		if err := getArg(&bytes.Buffer{}, f, sel); err == nil {
			t.Errorf("%s: expected error", sel)
		}
	}
}

func TestPatchFile(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		where string
		n     int
		want  string
	}{
		{
			name:  "replace",
			patch: `[{"op": "replace", "path": "/props/radius", "value": 20}]`,
			where: `kind == "sub_resource"`,
			n:     1,
			want:  "[sub_resource type=\"CircleShape2D\" id=1]\nradius = 20\n",
		},
		{
			name:  "add keeps layout",
			patch: `[{"op": "add", "path": "/props/visible", "value": false}]`,
			where: `kind == "node" && attrs.name == "Player"`,
			n:     1,
			want: `[node name="Player" type="KinematicBody2D"]
script = ExtResource( 1 )
position = Vector2( 10, -2.5 )
visible = false
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, playerScene)
			ops, err := jsonpatch.DecodePatch([]byte(tt.patch))
			if err != nil {
				t.Fatal(err)
			}
			n, err := patchFile(f, ops, query.MustCompile(tt.where), false)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.n {
				t.Errorf("patched %d sections want %d", n, tt.n)
			}
			if got := f.String(); !strings.Contains(got, tt.want) {
				t.Errorf("result does not contain %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestPatchStructure(t *testing.T) {
	f := mustParse(t, playerScene)
	ops, err := jsonpatch.DecodePatch([]byte(`[{"op": "add", "path": "/attrs/instance", "value": {"$lit": "ExtResource", "args": [1]}}]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := patchFile(f, ops, query.MustCompile(`kind == "node" && attrs.name == "Shape"`), false); err == nil {
		t.Errorf("expected a node with both type and instance to be rejected")
	}
}

func TestDumpFile(t *testing.T) {
	f := mustParse(t, `[gd_resource type="CircleShape2D" format=2]

[resource]
radius = 12.5
`)
	buf := &bytes.Buffer{}
	if err := dumpFile(&DumpConfig{MainConfig: &MainConfig{}}, buf, f); err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "kind": "gd_resource",
    "attrs": {
      "type": "CircleShape2D",
      "format": 2
    },
    "props": {}
  },
  {
    "kind": "resource",
    "attrs": {},
    "props": {
      "radius": 12.5
    }
  }
]
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := dumpFile(&DumpConfig{MainConfig: &MainConfig{}, YAML: true}, buf, f); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"- kind: gd_resource", "type: CircleShape2D", "radius: 12.5"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("yaml output does not contain %q:\n%s", s, buf.String())
		}
	}
}

func TestDiffFiles(t *testing.T) {
	cfg := &DiffConfig{MainConfig: &MainConfig{}}
	a := mustParse(t, playerScene)
	b := mustParse(t, strings.Replace(playerScene, "radius = 12.5", "radius = 20", 1))

	buf := &bytes.Buffer{}
	differs, err := diffFiles(cfg, buf, a, a)
	if err != nil {
		t.Fatal(err)
	}
	if differs || buf.Len() != 0 {
		t.Errorf("expected no difference, got %q", buf.String())
	}

	differs, err = diffFiles(cfg, buf, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	if !strings.Contains(buf.String(), "radius = 12.5 -> 20") {
		t.Errorf("unexpected diff:\n%s", buf.String())
	}

	buf.Reset()
	cfg.Reverse = true
	if _, err := diffFiles(cfg, buf, a, b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "radius = 20 -> 12.5") {
		t.Errorf("unexpected reversed diff:\n%s", buf.String())
	}
}

func TestPruneFile(t *testing.T) {
	text := strings.Replace(playerScene, "load_steps=3", "load_steps=4", 1)
	text = strings.Replace(text, "id=1]\n\n[sub", "id=1]\n\n[ext_resource path=\"res://Unused.png\" type=\"Texture\" id=2]\n\n[sub", 1)
	f := mustParse(t, text)
	n, err := pruneFile(&PruneConfig{MainConfig: &MainConfig{}, Renumber: true}, f)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("removed %d want 1", n)
	}
	if diff := cmp.Diff(playerScene, f.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWriteSections(t *testing.T) {
	f := mustParse(t, playerScene)
	secs, err := query.MustCompile(`kind == "node" && has("shape")`).Filter(f.Sections())
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := writeSections(buf, f, secs); err != nil {
		t.Fatal(err)
	}
	want := "[node name=\"Shape\" type=\"CollisionShape2D\" parent=\".\"]\nshape = SubResource( 1 )\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
