package gdtext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/project"
	"github.com/gdtext/gdtext/tree"
)

const rootScene = `[gd_scene load_steps=1 format=2]

[node name="Root" type="KinematicBody2D"]
collision_layer = 3

[node name="CollisionShape2D" type="CollisionShape2D" parent="."]
disabled = true

[node name="Sprite" type="Sprite" parent="."]
flip_h = false

[node name="Health" type="Control" parent="."]

[node name="LifeBar" type="TextureProgress" parent="Health"]
`

const midScene = `[gd_scene load_steps=2 format=2]

[ext_resource path="res://Root.tscn" type="PackedScene" id=1]

[node name="Mid" instance=ExtResource( 1 )]
collision_layer = 4

[node name="Health" parent="." index="2"]
pause_mode = 2
`

const leafScene = `[gd_scene load_steps=3 format=2]

[ext_resource path="res://Mid.tscn" type="PackedScene" id=1]

[sub_resource type="CircleShape2D" id=1]

[node name="Leaf" instance=ExtResource( 1 )]
shape = SubResource( 1 )

[node name="Sprite" type="Sprite" parent="." index="1"]
flip_h = true
`

var scenes = project.MapLoader{
	"res://Root.tscn": rootScene,
	"res://Mid.tscn":  midScene,
	"res://Leaf.tscn": leafScene,
}

func parseLeaf(t *testing.T) *File {
	t.Helper()
	f, err := Parse([]byte(leafScene), WithLoader(scenes), WithPath("res://Leaf.tscn"))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestTreeCreate(t *testing.T) {
	scene := NewScene()
	err := scene.UseTree(func(tr *tree.Tree) error {
		tr.SetRoot(tree.New("RootNode", "Node2D"))
		c := tree.New("Child", "Area2D")
		c.Set("visible", ir.FromBool(false))
		tr.Root().AddChild(c)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	checkString(t, scene, `[gd_scene load_steps=1 format=2]

[node name="RootNode" type="Node2D"]

[node name="Child" type="Area2D" parent="."]
visible = false
`)
}

func TestTreeDeepCreate(t *testing.T) {
	scene := NewScene()
	err := scene.UseTree(func(tr *tree.Tree) error {
		tr.SetRoot(tree.New("RootNode", "Node2D"))
		child := tree.New("Child", "Node")
		tr.Root().AddChild(child)
		child.AddChild(tree.New("ChildChild", "Node"))
		child.AddChild(tree.New("ChildChild2", "Node"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	checkString(t, scene, `[gd_scene load_steps=1 format=2]

[node name="RootNode" type="Node2D"]

[node name="Child" type="Node" parent="."]

[node name="ChildChild" type="Node" parent="Child"]

[node name="ChildChild2" type="Node" parent="Child"]
`)
}

func TestUseTreeError(t *testing.T) {
	f, err := Parse([]byte(rootScene))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err = f.UseTree(func(tr *tree.Tree) error {
		tr.Root().Set("collision_layer", ir.FromInt(9))
		if err := tr.Root().RemoveChildNamed("Sprite"); err != nil {
			return err
		}
		tr.GetNode("Health").AddChild(tree.New("Extra", "Node"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	checkString(t, f, rootScene)
}

func TestEditInPlace(t *testing.T) {
	f, err := Parse([]byte(rootScene))
	if err != nil {
		t.Fatal(err)
	}
	held, _ := f.FindNode(Where("name", "Root"))
	e, err := f.EditTree()
	if err != nil {
		t.Fatal(err)
	}
	e.Tree().Root().Set("vframes", ir.FromInt(10))
	e.Tree().Root().InsertChild(0, tree.New("First", "Node"))
	if held.Get("vframes") != nil {
		t.Errorf("file changed before commit")
	}
	if err := e.Commit(); err != nil {
		t.Fatal(err)
	}
	if v := held.Get("vframes"); v == nil {
		t.Errorf("held section not updated")
	}
	nodes := f.Nodes()
	if nodes[0].Section != held.Section || nodes[1].Name() != "First" || nodes[2].Name() != "CollisionShape2D" {
		t.Errorf("got order %s, %s, %s", nodes[0].Name(), nodes[1].Name(), nodes[2].Name())
	}
	if _, ok := nodes[1].Index(); ok {
		t.Errorf("index written without explicit sibling indices")
	}
	if err := e.Commit(); !errors.Is(err, ErrEditDone) {
		t.Errorf("got %v", err)
	}
}

func TestInheritedEdit(t *testing.T) {
	f := parseLeaf(t)
	err := f.UseTree(func(tr *tree.Tree) error {
		tr.GetNode("Sprite").Set("flip_h", ir.FromBool(false))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	checkString(t, f, `[gd_scene load_steps=3 format=2]

[ext_resource path="res://Mid.tscn" type="PackedScene" id=1]

[sub_resource type="CircleShape2D" id=1]

[node name="Leaf" instance=ExtResource( 1 )]
shape = SubResource( 1 )
`)

	err = f.UseTree(func(tr *tree.Tree) error {
		tr.GetNode("Health/LifeBar").Set("value", ir.FromInt(50))
		tr.Root().AddChild(tree.New("NewChild", "Node2D"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	checkString(t, f, `[gd_scene load_steps=3 format=2]

[ext_resource path="res://Mid.tscn" type="PackedScene" id=1]

[sub_resource type="CircleShape2D" id=1]

[node name="Leaf" instance=ExtResource( 1 )]
shape = SubResource( 1 )

[node name="LifeBar" parent="Health"]
value = 50

[node name="NewChild" type="Node2D" parent="." index="3"]
`)

	err = f.UseTree(func(tr *tree.Tree) error {
		return tr.GetNode("Health").SetName("Renamed")
	})
	if !errors.Is(err, tree.ErrTreeMutation) {
		t.Errorf("got %v", err)
	}
}

func TestInheritedGetNode(t *testing.T) {
	f := parseLeaf(t)
	lb, err := f.GetNode("Health/LifeBar")
	if err != nil {
		t.Fatal(err)
	}
	if lb.Type() != "TextureProgress" {
		t.Errorf("got type %q", lb.Type())
	}
	if v, ok := lb.Parent().Get("pause_mode"); !ok || !ir.Equal(v, ir.FromInt(2)) {
		t.Errorf("Health pause_mode: got %v", v)
	}
	root, err := f.GetNode("")
	if err != nil {
		t.Fatal(err)
	}
	if root.Name() != "Leaf" {
		t.Errorf("got root %s", root.Name())
	}
	missing, err := f.GetNode("Missing")
	if err != nil || missing != nil {
		t.Errorf("got %v %v", missing, err)
	}
}

func TestParentScene(t *testing.T) {
	f := parseLeaf(t)
	if !f.IsInherited() {
		t.Errorf("leaf not inherited")
	}
	res, ok := f.ParentScene()
	if !ok || res != "res://Mid.tscn" {
		t.Errorf("got %q", res)
	}
	mid, err := f.LoadParentScene()
	if err != nil {
		t.Fatal(err)
	}
	if mid.Path() != "res://Mid.tscn" || !mid.IsInherited() {
		t.Errorf("bad parent %s", mid.Path())
	}
	root, err := mid.LoadParentScene()
	if err != nil {
		t.Fatal(err)
	}
	if root.IsInherited() {
		t.Errorf("root scene inherited")
	}
	if _, err := root.LoadParentScene(); !errors.Is(err, ErrNoParentScene) {
		t.Errorf("got %v", err)
	}

	bare, err := Parse([]byte(leafScene))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bare.LoadParentScene(); !errors.Is(err, ErrNoLoader) {
		t.Errorf("got %v", err)
	}
	if _, err := bare.GetNode(""); !errors.Is(err, ErrNoLoader) {
		t.Errorf("got %v", err)
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		project.Marker:      "config_version=4\n",
		"Root.tscn":         rootScene,
		"scenes/Mid.tscn":   midScene,
		"scenes/README.txt": "",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	f, err := Load(filepath.Join(dir, "scenes", "Mid.tscn"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != "res://scenes/Mid.tscn" {
		t.Errorf("got path %q", f.Path())
	}
	lb, err := f.GetNode("Health/LifeBar")
	if err != nil {
		t.Fatal(err)
	}
	if lb == nil || lb.Type() != "TextureProgress" {
		t.Errorf("got %v", lb)
	}
}
