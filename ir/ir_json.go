package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// JSON form of values. Plain JSON covers null, booleans, strings, arrays,
// numbers which are valid JSON, and maps whose keys are all plain strings.
// Everything else is an object with a single "$" key:
//
//	{"$num": "inf"}
//	{"$name": "idle"}
//	{"$lit": "Vector2", "args": [1, 2]}
//	{"$array": "int", "values": [1, 2]}
//	{"$map": [[{"$name": "k"}, 1]]}
//
// Layout is not carried.

func (y *Value) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w *bytes.Buffer, y *Value) error {
	if y == nil {
		w.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		w.WriteString("null")
	case BoolType:
		fmt.Fprintf(w, "%t", y.Bool)
	case NumberType:
		if isJSONNumber(y.Number) {
			w.WriteString(y.Number)
			return nil
		}
		w.WriteString(`{"$num":`)
		writeJSONString(w, y.Number)
		w.WriteByte('}')
	case StringType:
		writeJSONString(w, y.String)
	case StringNameType:
		w.WriteString(`{"$name":`)
		writeJSONString(w, y.String)
		w.WriteByte('}')
	case ArrayType:
		return writeJSONArray(w, y.Values)
	case MapType:
		if plainKeys(y) {
			w.WriteByte('{')
			for i, f := range y.Fields {
				if i > 0 {
					w.WriteByte(',')
				}
				writeJSONString(w, f.String)
				w.WriteByte(':')
				if err := writeJSON(w, y.Values[i]); err != nil {
					return err
				}
			}
			w.WriteByte('}')
			return nil
		}
		w.WriteString(`{"$map":[`)
		for i, f := range y.Fields {
			if i > 0 {
				w.WriteByte(',')
			}
			w.WriteByte('[')
			if err := writeJSON(w, f); err != nil {
				return err
			}
			w.WriteByte(',')
			if err := writeJSON(w, y.Values[i]); err != nil {
				return err
			}
			w.WriteByte(']')
		}
		w.WriteString("]}")
	case LiteralType:
		w.WriteString(`{"$lit":`)
		writeJSONString(w, y.Name)
		w.WriteString(`,"args":`)
		if err := writeJSONArray(w, y.Values); err != nil {
			return err
		}
		w.WriteByte('}')
	case TypedArrayType:
		w.WriteString(`{"$array":`)
		writeJSONString(w, y.Name)
		w.WriteString(`,"values":`)
		if err := writeJSONArray(w, y.Elements()); err != nil {
			return err
		}
		w.WriteByte('}')
	default:
		return fmt.Errorf("%w: cannot marshal %s", ErrType, y.Type)
	}
	return nil
}

func writeJSONArray(w *bytes.Buffer, vs []*Value) error {
	w.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			w.WriteByte(',')
		}
		if err := writeJSON(w, v); err != nil {
			return err
		}
	}
	w.WriteByte(']')
	return nil
}

func writeJSONString(w *bytes.Buffer, s string) {
	d, _ := json.Marshal(s)
	w.Write(d)
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil && n.String() == s
}

func plainKeys(y *Value) bool {
	for _, f := range y.Fields {
		if f.Type != StringType || strings.HasPrefix(f.String, "$") {
			return false
		}
	}
	return true
}

func (y *Value) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	v, err := readJSON(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after value", ErrType)
	}
	*y = *v
	return nil
}

// FromJSON decodes the JSON form of a value.
func FromJSON(d []byte) (*Value, error) {
	v := &Value{}
	if err := v.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return v, nil
}

func readJSON(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case json.Number:
		return FromNumber(t.String())
	case string:
		return FromString(t), nil
	case json.Delim:
		switch t {
		case '[':
			vs := []*Value{}
			for dec.More() {
				v, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				vs = append(vs, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromSlice(vs), nil
		case '{':
			m := NewMap()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", ErrType, kt)
				}
				v, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				m.Fields = append(m.Fields, FromString(k))
				m.Values = append(m.Values, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return fromJSONObject(m)
		}
	}
	return nil, fmt.Errorf("%w: unexpected JSON token %v", ErrType, tok)
}

func fromJSONObject(m *Value) (*Value, error) {
	if len(m.Fields) == 0 || !strings.HasPrefix(m.Fields[0].String, "$") {
		return m, nil
	}
	switch m.Fields[0].String {
	case "$num":
		s, ok := m.Values[0].AsString()
		if !ok {
			return nil, fmt.Errorf("%w: $num wants a string", ErrType)
		}
		return FromNumber(s)
	case "$name":
		s, ok := m.Values[0].AsString()
		if !ok {
			return nil, fmt.Errorf("%w: $name wants a string", ErrType)
		}
		return FromStringName(s), nil
	case "$lit":
		name, ok := m.Values[0].AsString()
		args := m.Get("args")
		if !ok || args == nil || args.Type != ArrayType {
			return nil, fmt.Errorf("%w: $lit wants a name and args", ErrType)
		}
		return NewLiteral(name, args.Values...)
	case "$array":
		name, ok := m.Values[0].AsString()
		vs := m.Get("values")
		if !ok || vs == nil || vs.Type != ArrayType {
			return nil, fmt.Errorf("%w: $array wants a type and values", ErrType)
		}
		return FromTypedArray(name, vs.Values), nil
	case "$map":
		pairs := m.Values[0]
		if pairs.Type != ArrayType {
			return nil, fmt.Errorf("%w: $map wants pairs", ErrType)
		}
		res := NewMap()
		for _, p := range pairs.Values {
			if p.Type != ArrayType || len(p.Values) != 2 {
				return nil, fmt.Errorf("%w: $map wants pairs", ErrType)
			}
			k := p.Values[0]
			if k.Type != StringType && k.Type != StringNameType {
				return nil, fmt.Errorf("%w: map key is %s", ErrType, k.Type)
			}
			res.Fields = append(res.Fields, k)
			res.Values = append(res.Values, p.Values[1])
		}
		return res, nil
	}
	return m, nil
}

// ToAny converts y to plain Go values: nil, bool, int64, float64, string,
// []any and map[string]any. Literals become
// map[string]any{"$lit": name, "args": []any{...}}.
func ToAny(y *Value) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case StringType, StringNameType:
		return y.String
	case ArrayType, TypedArrayType:
		es := y.Elements()
		res := make([]any, len(es))
		for i, e := range es {
			res[i] = ToAny(e)
		}
		return res
	case MapType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	case LiteralType:
		args := make([]any, len(y.Values))
		for i, a := range y.Values {
			args[i] = ToAny(a)
		}
		return map[string]any{"$lit": y.Name, "args": args}
	}
	return nil
}
