package section

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
)

type Header struct {
	Name  string
	Attrs *Props
}

type Section struct {
	Header Header
	Props  *Props
}

// New returns a section of the given kind with empty header attributes and
// properties.
func New(kind string, attrs ...ir.Entry) *Section {
	return &Section{
		Header: Header{Name: kind, Attrs: NewProps(attrs...)},
		Props:  &Props{},
	}
}

func (s *Section) Kind() string {
	return s.Header.Name
}

// Attr returns a header attribute, or nil.
func (s *Section) Attr(key string) *ir.Value {
	return s.Header.Attrs.Get(key)
}

func (s *Section) SetAttr(key string, v *ir.Value) {
	s.Header.Attrs.SetOrdered(key, v, attrOrder[s.Kind()])
}

func (s *Section) DeleteAttr(key string) bool {
	return s.Header.Attrs.Delete(key)
}

// StringAttr returns the text of a string header attribute.
func (s *Section) StringAttr(key string) (string, bool) {
	return s.Attr(key).AsString()
}

// Get returns a property, or nil.
func (s *Section) Get(key string) *ir.Value {
	return s.Props.Get(key)
}

func (s *Section) Set(key string, v *ir.Value) {
	s.Props.Set(key, v)
}

func (s *Section) Delete(key string) bool {
	return s.Props.Delete(key)
}

// Lookup resolves key against the header attributes first and then the
// properties.
func (s *Section) Lookup(key string) (*ir.Value, bool) {
	if v, ok := s.Header.Attrs.Lookup(key); ok {
		return v, true
	}
	return s.Props.Lookup(key)
}

// Check reports structural problems. With permissive set, an ext_resource
// may carry properties.
func (s *Section) Check(permissive bool) error {
	switch s.Kind() {
	case KindExtResource:
		if s.Props.Len() != 0 && !permissive {
			return fmt.Errorf("%w: ext_resource %s has %d properties", ErrStructure, idText(s), s.Props.Len())
		}
	case KindNode:
		if s.Header.Attrs.Has("type") && s.Header.Attrs.Has("instance") {
			return fmt.Errorf("%w: node %q has both type and instance", ErrStructure, nameText(s))
		}
	}
	return nil
}

func idText(s *Section) string {
	return ir.IDKey(s.Attr("id"))
}

func nameText(s *Section) string {
	n, _ := s.StringAttr("name")
	return n
}

func (s *Section) Clone() *Section {
	return &Section{
		Header: Header{Name: s.Header.Name, Attrs: s.Header.Attrs.Clone()},
		Props:  s.Props.Clone(),
	}
}

// Equal compares kind, attributes and properties, all in order.
func (s *Section) Equal(o *Section) bool {
	return s.Kind() == o.Kind() &&
		s.Header.Attrs.Equal(o.Header.Attrs) &&
		s.Props.Equal(o.Props)
}

// Encode writes the header line and one line per property, without a final
// newline.
func (s *Section) Encode(w io.Writer, opts ...encode.EncodeOption) error {
	return encode.EncodeSection(s.Kind(), s.Header.Attrs.Entries(), s.Props.Entries(), w, opts...)
}

func (s *Section) String() string {
	buf := &bytes.Buffer{}
	if err := s.Encode(buf); err != nil {
		return fmt.Sprintf("[%s <%v>]", s.Kind(), err)
	}
	return buf.String()
}
