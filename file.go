package gdtext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gdtext/gdtext/debug"
	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/parse"
	"github.com/gdtext/gdtext/project"
	"github.com/gdtext/gdtext/section"
)

// FileType is decided by the kind of a file's first section.
type FileType int

const (
	GenericFile FileType = iota
	SceneFile
	ResourceFile
)

func (t FileType) String() string {
	switch t {
	case SceneFile:
		return "scene"
	case ResourceFile:
		return "resource"
	default:
		return "generic"
	}
}

// Ext returns the file extension used for files of this type.
func (t FileType) Ext() string {
	switch t {
	case SceneFile:
		return ".tscn"
	case ResourceFile:
		return ".tres"
	default:
		return ""
	}
}

func typeOf(secs []*section.Section) FileType {
	if len(secs) == 0 {
		return GenericFile
	}
	switch secs[0].Kind() {
	case section.KindScene:
		return SceneFile
	case section.KindResource:
		return ResourceFile
	}
	return GenericFile
}

type File struct {
	typ      FileType
	sections []*section.Section
	opts     fileOpts
}

// NewFile returns a file holding secs as given.
func NewFile(secs ...*section.Section) *File {
	return &File{typ: typeOf(secs), sections: slices.Clone(secs)}
}

// NewScene returns a scene with a [gd_scene load_steps=1 format=2] header,
// followed by secs in canonical order.
func NewScene(secs ...*section.Section) *File {
	h := section.New(section.KindScene)
	return newCommon(h, secs)
}

// NewResource returns a resource file. typ, when not empty, is written as
// the header's type attribute.
func NewResource(typ string, secs ...*section.Section) *File {
	h := section.New(section.KindResource)
	if typ != "" {
		h.SetAttr("type", ir.FromString(typ))
	}
	return newCommon(h, secs)
}

func newCommon(h *section.Section, secs []*section.Section) *File {
	h.SetAttr("load_steps", ir.FromInt(1))
	h.SetAttr("format", ir.FromInt(2))
	f := &File{typ: typeOf([]*section.Section{h}), sections: []*section.Section{h}}
	for _, s := range secs {
		f.AddSection(s)
	}
	return f
}

// Parse parses the text of a scene or resource file.
func Parse(d []byte, opts ...Option) (*File, error) {
	return parseWith(d, getOpts(opts))
}

func parseWith(d []byte, o fileOpts) (*File, error) {
	secs, err := parse.Sections(d, o.parseOpts()...)
	if err != nil {
		return nil, err
	}
	return &File{typ: typeOf(secs), sections: secs, opts: o}, nil
}

// Load reads and parses the file at path. Unless a loader is given, parent
// scenes are read from the project containing path, if any.
func Load(path string, opts ...Option) (*File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o := getOpts(opts)
	if o.loader == nil {
		root, err := project.FindRoot(path)
		if err != nil {
			return nil, err
		}
		if root != "" {
			o.loader = &project.FSLoader{Root: root}
			if o.path == "" {
				if res, err := project.FileToRes(root, path); err == nil {
					o.path = res
				}
			}
		}
	}
	if debug.Load() {
		debug.Logf("loading %s as %q", path, o.path)
	}
	f, err := parseWith(d, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// SetOptions replaces the options a file was created with.
func (f *File) SetOptions(opts ...Option) {
	f.opts = getOpts(opts)
}

func (f *File) Type() FileType {
	return f.typ
}

// Path returns the file's resource path, if known.
func (f *File) Path() string {
	return f.opts.path
}

// Sections returns the file's sections, in order.
func (f *File) Sections() []*section.Section {
	return slices.Clone(f.sections)
}

func (f *File) Len() int {
	return len(f.sections)
}

// Header returns the gd_scene or gd_resource section, or nil when the file
// is generic or its header was removed.
func (f *File) Header() *section.Section {
	if f.typ == GenericFile || len(f.sections) == 0 {
		return nil
	}
	switch h := f.sections[0]; h.Kind() {
	case section.KindScene, section.KindResource:
		return h
	}
	return nil
}

// LoadSteps returns the load_steps header attribute.
func (f *File) LoadSteps() (int64, bool) {
	h := f.Header()
	if h == nil {
		return 0, false
	}
	return h.Attr("load_steps").AsInt()
}

// addLoadSteps adjusts load_steps by delta. A header without load_steps
// gets one when the first resource is added; once resources exist without
// it the writer omits the count, and so does this file.
func (f *File) addLoadSteps(delta int64) {
	h := f.Header()
	if h == nil {
		return
	}
	n, ok := f.LoadSteps()
	if !ok {
		if delta <= 0 || f.resourceCount() != int(delta) {
			return
		}
		n = 1
	}
	h.SetAttr("load_steps", ir.FromInt(n+delta))
}

func (f *File) resourceCount() int {
	n := 0
	for _, s := range f.sections {
		if isResourceKind(s.Kind()) {
			n++
		}
	}
	return n
}

// Format returns the format header attribute, 0 if absent.
func (f *File) Format() int64 {
	h := f.Header()
	if h == nil {
		return 0
	}
	n, _ := h.Attr("format").AsInt()
	return n
}

func isResourceKind(kind string) bool {
	return kind == section.KindExtResource || kind == section.KindSubResource
}

// insertIndex returns the index before the first section ordered after
// kind. Sections of kinds outside the canonical order go last.
func (f *File) insertIndex(kind string) int {
	o, ok := section.Order(kind)
	if !ok {
		return len(f.sections)
	}
	for i, s := range f.sections {
		if so, ok := section.Order(s.Kind()); ok && so > o {
			return i
		}
	}
	return len(f.sections)
}

// AddSection inserts s after the existing sections of its kind and of the
// kinds ordered before it, and returns its index.
func (f *File) AddSection(s *section.Section) int {
	i := f.insertIndex(s.Kind())
	f.sections = slices.Insert(f.sections, i, s)
	if isResourceKind(s.Kind()) {
		f.addLoadSteps(1)
	}
	return i
}

// RemoveSection removes s, reporting whether it was found.
func (f *File) RemoveSection(s *section.Section) bool {
	i := slices.Index(f.sections, s)
	if i == -1 {
		return false
	}
	f.RemoveAt(i)
	return true
}

// RemoveAt removes and returns the i'th section, or nil if i is out of
// range.
func (f *File) RemoveAt(i int) *section.Section {
	if i < 0 || i >= len(f.sections) {
		return nil
	}
	s := f.sections[i]
	f.sections = slices.Delete(f.sections, i, i+1)
	if isResourceKind(s.Kind()) {
		f.addLoadSteps(-1)
	}
	return s
}

// nextID returns 1 plus the largest id of the given kind. Ids are strings in
// format 3 files and integers before.
func (f *File) nextID(kind string) *ir.Value {
	var top int64
	for _, s := range f.sections {
		if s.Kind() != kind {
			continue
		}
		top = max(top, idNumber(s.Attr("id")))
	}
	if f.Format() >= 3 {
		return ir.FromString(strconv.FormatInt(top+1, 10))
	}
	return ir.FromInt(top + 1)
}

// idNumber returns the integer id, or the leading digits of a string id.
func idNumber(id *ir.Value) int64 {
	if n, ok := id.AsInt(); ok {
		return n
	}
	s, _ := id.AsString()
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n
}

// AddExtResource adds an ext_resource with the next free id.
func (f *File) AddExtResource(path, typ string) section.ExtResource {
	e := section.NewExtResource(path, typ, f.nextID(section.KindExtResource))
	f.AddSection(e.Section)
	return e
}

// AddSubResource adds a sub_resource with the next free id and the given
// properties.
func (f *File) AddSubResource(typ string, props ...ir.Entry) section.SubResource {
	r := section.NewSubResource(typ, f.nextID(section.KindSubResource))
	for _, e := range props {
		r.Set(e.Key, e.Value)
	}
	f.AddSection(r.Section)
	return r
}

// AddNode adds a node section. Empty typ and parent, and a negative index,
// are left out.
func (f *File) AddNode(name, typ, parent string, index int) section.Node {
	n := section.NewNode(name, typ, parent, index)
	f.AddSection(n.Section)
	return n
}

// AddExtNode adds a node instancing the ext_resource with the given id.
func (f *File) AddExtNode(name string, id *ir.Value, parent string, index int) section.Node {
	n := section.NewInstanceNode(name, id, parent, index)
	f.AddSection(n.Section)
	return n
}

// Encode writes the sections separated by blank lines, with a final newline.
// Values without a recorded layout follow the style of the file's format.
func (f *File) Encode(w io.Writer, opts ...encode.EncodeOption) error {
	opts = append([]encode.EncodeOption{encode.EncodeCompact(encode.CompactFor(f.Format()))}, opts...)
	buf := &bytes.Buffer{}
	for i, s := range f.sections {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		if err := s.Encode(buf, opts...); err != nil {
			return err
		}
	}
	if len(f.sections) > 0 {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *File) String() string {
	buf := &bytes.Buffer{}
	if err := f.Encode(buf); err != nil {
		return fmt.Sprintf("<%s file: %v>", f.typ, err)
	}
	return buf.String()
}

// Write writes the file to path, adding .tscn or .tres when path has no
// extension. It returns the path written.
func (f *File) Write(path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += f.typ.Ext()
	}
	buf := &bytes.Buffer{}
	if err := f.Encode(buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Equal compares the sections of two files in order.
func (f *File) Equal(o *File) bool {
	return slices.EqualFunc(f.sections, o.sections, (*section.Section).Equal)
}
