package desc

import (
	"bytes"
	"encoding/json"
)

// JSON serialization of descriptors.
// Every descriptor is an object with a "type" discriminator. Optional tuple
// elements and properties carry "optional": true next to their own fields.

// MarshalJSON implements json.Marshaler for Primitive.
func (d *Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type string `json:"type"`
	}{
		Type: string(d.Name),
	})
}

// MarshalJSON implements json.Marshaler for Constant.
func (d *Constant) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string  `json:"type"`
		Value Literal `json:"value"`
	}{
		Type:  "constant",
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for ConstantUnion.
func (d *ConstantUnion) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string     `json:"type"`
		Value LiteralSet `json:"value"`
	}{
		Type:  "constant_union",
		Value: d.Values,
	})
}

// MarshalJSON implements json.Marshaler for Union.
func (d *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string       `json:"type"`
		Types []Descriptor `json:"types"`
	}{
		Type:  "union",
		Types: nonNil(d.Types),
	})
}

// MarshalJSON implements json.Marshaler for Intersection.
func (d *Intersection) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type  string       `json:"type"`
		Types []Descriptor `json:"types"`
	}{
		Type:  "intersection",
		Types: nonNil(d.Types),
	})
}

// MarshalJSON implements json.Marshaler for Array.
func (d *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type      string     `json:"type"`
		ValueType Descriptor `json:"valueType"`
	}{
		Type:      "array",
		ValueType: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for Tuple.
func (d *Tuple) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"tuple","valueTypes":[`)
	for i, e := range d.Elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		var b []byte
		var err error
		if e.Rest {
			b, err = json.Marshal(&struct {
				Type      string     `json:"type"`
				ValueType Descriptor `json:"valueType"`
			}{
				Type:      "rest",
				ValueType: e.Type,
			})
		} else {
			b, err = marshalMember(e.Type, e.Optional)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Object.
// Properties are written in declaration order.
func (d *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)
	for i, p := range d.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		b, err := marshalMember(p.Type, p.Optional)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	if d.Index != nil {
		b, err := json.Marshal(&struct {
			ValueType Descriptor `json:"valueType"`
		}{
			ValueType: d.Index.ValueType,
		})
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"index":`)
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for External.
func (d *External) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{
		Type: "external",
		Name: d.Name,
	})
}

// marshalMember encodes d, adding "optional": true when optional is set.
func marshalMember(d Descriptor, optional bool) ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil || !optional {
		return b, err
	}
	b = bytes.TrimRight(b, " \n")
	return append(b[:len(b)-1], `,"optional":true}`...), nil
}

func nonNil(types []Descriptor) []Descriptor {
	if types == nil {
		return []Descriptor{}
	}
	return types
}
