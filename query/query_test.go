package query

import (
	"testing"

	"github.com/gdtext/gdtext/parse"
)

const scene = `[gd_scene load_steps=3 format=2]

[ext_resource path="res://icon.png" type="Texture" id=1]

[sub_resource type="CircleShape2D" id=1]
radius = 12.5

[sub_resource type="CircleShape2D" id=2]
radius = 4

[node name="Root" type="Node2D"]

[node name="Icon" type="Sprite" parent="."]
texture = ExtResource( 1 )
position = Vector2( 1, 2 )
`

func TestFilter(t *testing.T) {
	secs, err := parse.Sections([]byte(scene))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		q    string
		want []string
	}{
		{q: `kind == "node"`, want: []string{"node", "node"}},
		{q: `kind == "sub_resource" && props.radius > 10`, want: []string{"sub_resource"}},
		{q: `kind == "node" && attrs.type == "Sprite" && has("texture")`, want: []string{"node"}},
		{q: `ref("texture") == "1"`, want: []string{"node"}},
		{q: `text("position") == "Vector2( 1, 2 )"`, want: []string{"node"}},
		{q: `attrs.path == "res://icon.png"`, want: []string{"ext_resource"}},
		{q: `has("nothing")`},
	}
	for _, tt := range tests {
		q, err := Compile(tt.q)
		if err != nil {
			t.Errorf("%s: %v", tt.q, err)
			continue
		}
		got, err := q.Filter(secs)
		if err != nil {
			t.Errorf("%s: %v", tt.q, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d sections want %d", tt.q, len(got), len(tt.want))
			continue
		}
		for i, s := range got {
			if s.Kind() != tt.want[i] {
				t.Errorf("%s: got %s want %s", tt.q, s.Kind(), tt.want[i])
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`kind ==`, `"not a bool"`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("%s: expected an error", src)
		}
	}
}
