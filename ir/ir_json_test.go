package ir

import (
	"math"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	inf := FromFloat(math.Inf(1))
	keyed := NewMap()
	keyed.Fields = append(keyed.Fields, FromStringName("idle"))
	keyed.Values = append(keyed.Values, FromInt(1))
	values := []*Value{
		Null(),
		FromBool(true),
		FromInt(-3),
		inf,
		FromString("a\n\"b\""),
		FromStringName("walk"),
		FromStrings("x", "y"),
		NewMap().Set("pos", NewVector2(1, 2.5).Value).Set("$odd", FromInt(1)),
		keyed,
		FromTypedArray("int", []*Value{FromInt(1), FromInt(2)}),
		ExtRef(4).Value,
	}
	for _, v := range values {
		d, err := v.MarshalJSON()
		if err != nil {
			t.Errorf("marshal %s: %v", v.Type, err)
			continue
		}
		back, err := FromJSON(d)
		if err != nil {
			t.Errorf("unmarshal %s: %v", d, err)
			continue
		}
		if !Equal(v, back) {
			t.Errorf("round trip through %s changed value", d)
		}
	}
}

func TestJSONPlain(t *testing.T) {
	v := NewMap().Set("a", FromStrings("b")).Set("n", FromInt(1))
	d, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"a":["b"],"n":1}` {
		t.Errorf("got %s", d)
	}
	if _, err := FromJSON([]byte(`{"$lit":"Color","args":[2,0,0,1]}`)); err == nil {
		t.Errorf("expected validation error through JSON")
	}
}
