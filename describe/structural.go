package describe

import (
	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

func (d *describer) describeTuple(n *syntax.Tuple, subst *Substitution) (desc.Descriptor, error) {
	elems := make([]desc.TupleElement, 0, len(n.Elements))
	sawRest := false
	for _, el := range n.Elements {
		var e desc.TupleElement
		inner := el
		switch el := el.(type) {
		case *syntax.NamedTupleMember:
			inner = el.Type
			e.Optional = el.Optional
			e.Rest = el.Rest
		case *syntax.OptionalType:
			inner = el.Type
			e.Optional = true
		case *syntax.RestType:
			inner = el.Type
			e.Rest = true
		}

		t, err := d.describe(inner, subst)
		if err != nil {
			return nil, err
		}
		if e.Rest {
			if sawRest {
				return nil, unsupported(el, "a tuple can have only one rest element")
			}
			arr, ok := t.(*desc.Array)
			if !ok {
				return nil, unsupported(el, "rest element of a tuple must be an array type, got %s", t.Kind())
			}
			sawRest = true
			t = arr.Element
		}
		e.Type = t
		elems = append(elems, e)
	}
	return &desc.Tuple{Elements: elems}, nil
}

// describeMembers decodes an object type literal or interface body. When base
// is non-nil the members are laid on top of a copy of it: a property of the
// same name replaces the base property. An object has at most one index
// signature, inherited ones included.
func (d *describer) describeMembers(members []syntax.Member, base *desc.Object, subst *Substitution) (*desc.Object, error) {
	obj := &desc.Object{}
	if base != nil {
		obj = base.WithIndex(base.Index)
	}

	hasIndex := obj.Index != nil
	for _, m := range members {
		switch m := m.(type) {
		case *syntax.IndexSignature:
			if hasIndex {
				return nil, errorf(m, CodeDuplicateIndexSignature, "an object type can have only one index signature")
			}
			key, err := d.describe(m.Key, subst)
			if err != nil {
				return nil, err
			}
			if p, ok := key.(*desc.Primitive); !ok || p.Name != desc.PrimitiveString {
				return nil, errorf(m, CodeInvalidIndexKey, "index signature key must be string, got %s", key.Kind())
			}
			if m.Value == nil {
				return nil, errorf(m, CodeMissingPropertyType, "index signature has no value type")
			}
			val, err := d.describe(m.Value, subst)
			if err != nil {
				return nil, err
			}
			obj.Index = &desc.Index{ValueType: val}
			hasIndex = true

		case *syntax.PropertySignature:
			if m.NameKind == syntax.NameComputed {
				return nil, unsupported(m, "computed property names are not supported")
			}
			if m.Type == nil {
				return nil, errorf(m, CodeMissingPropertyType, "property %q has no type annotation", m.Name)
			}
			t, err := d.describe(m.Type, subst)
			if err != nil {
				return nil, err
			}
			setProperty(obj, desc.Property{Name: m.Name, Type: t, Optional: m.Optional})

		case *syntax.OtherMember:
			return nil, unsupported(m, "%s members are not supported", m.What)

		default:
			return nil, unsupported(m, "unknown member %T", m)
		}
	}
	return obj, nil
}

// setProperty adds p to obj, replacing a property of the same name in place.
// obj must not be shared yet.
func setProperty(obj *desc.Object, p desc.Property) {
	for i := range obj.Properties {
		if obj.Properties[i].Name == p.Name {
			obj.Properties[i] = p
			return
		}
	}
	obj.Properties = append(obj.Properties, p)
}
