// Package emit writes Type Descriptors as TypeScript source.
//
// Descriptors are written as object literals with the same field names as
// their JSON form, except that the values of a constant union are written as
// a Set. Generated modules export a collection of such literals keyed by
// name.
package emit

import (
	"bytes"
	"fmt"

	"github.com/broady/typedesc/desc"
)

// Emitter handles TypeScript code emission for descriptors.
type Emitter struct {
	// Indent is the indentation of collection entries (default: a tab).
	Indent string
}

// Descriptor returns d as a TypeScript expression.
func (e *Emitter) Descriptor(d desc.Descriptor) (string, error) {
	var buf bytes.Buffer
	if err := e.writeDescriptor(&buf, d, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Param is a described method parameter.
type Param struct {
	Name     string
	Type     desc.Descriptor
	Optional bool
}

// Params returns the parameter list as a TypeScript array expression.
func (e *Emitter) Params(params []Param) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("{name: ")
		buf.WriteString(quote(p.Name))
		buf.WriteString(", type: ")
		if err := e.writeDescriptor(&buf, p.Type, false); err != nil {
			return "", fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if p.Optional {
			buf.WriteString(", optional: true")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

// writeDescriptor writes d. When optional is set the object gets an
// "optional: true" field, as tuple elements and properties do.
func (e *Emitter) writeDescriptor(buf *bytes.Buffer, d desc.Descriptor, optional bool) error {
	switch d := d.(type) {
	case *desc.Primitive:
		fmt.Fprintf(buf, "{type: %s", quote(string(d.Name)))

	case *desc.Constant:
		buf.WriteString(`{type: "constant", value: `)
		buf.WriteString(literal(d.Value))

	case *desc.ConstantUnion:
		buf.WriteString(`{type: "constant_union", value: new Set([`)
		for i, l := range d.Values.Items() {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(literal(l))
		}
		buf.WriteString("])")

	case *desc.Union:
		buf.WriteString(`{type: "union", types: `)
		if err := e.writeList(buf, d.Types); err != nil {
			return err
		}

	case *desc.Intersection:
		buf.WriteString(`{type: "intersection", types: `)
		if err := e.writeList(buf, d.Types); err != nil {
			return err
		}

	case *desc.Array:
		buf.WriteString(`{type: "array", valueType: `)
		if err := e.writeDescriptor(buf, d.Element, false); err != nil {
			return err
		}

	case *desc.Tuple:
		buf.WriteString(`{type: "tuple", valueTypes: [`)
		for i, el := range d.Elements {
			if i > 0 {
				buf.WriteString(", ")
			}
			if el.Rest {
				buf.WriteString(`{type: "rest", valueType: `)
				if err := e.writeDescriptor(buf, el.Type, false); err != nil {
					return err
				}
				buf.WriteByte('}')
				continue
			}
			if err := e.writeDescriptor(buf, el.Type, el.Optional); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case *desc.Object:
		buf.WriteString(`{type: "object", properties: {`)
		for i, p := range d.Properties {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(propertyKey(p.Name))
			buf.WriteString(": ")
			if err := e.writeDescriptor(buf, p.Type, p.Optional); err != nil {
				return fmt.Errorf("property %s: %w", p.Name, err)
			}
		}
		buf.WriteByte('}')
		if d.Index != nil {
			buf.WriteString(", index: {valueType: ")
			if err := e.writeDescriptor(buf, d.Index.ValueType, false); err != nil {
				return err
			}
			buf.WriteByte('}')
		}

	case *desc.External:
		fmt.Fprintf(buf, `{type: "external", name: %s`, quote(d.Name))

	case nil:
		return fmt.Errorf("missing descriptor")
	default:
		return fmt.Errorf("unsupported descriptor kind: %s", d.Kind())
	}

	if optional {
		buf.WriteString(", optional: true")
	}
	buf.WriteByte('}')
	return nil
}

func (e *Emitter) writeList(buf *bytes.Buffer, types []desc.Descriptor) error {
	buf.WriteByte('[')
	for i, t := range types {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := e.writeDescriptor(buf, t, false); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func literal(l desc.Literal) string {
	if s, ok := l.StringValue(); ok {
		return quote(s)
	}
	return l.String()
}
