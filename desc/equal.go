package desc

// Equal reports whether a and b describe the same type.
//
// Comparison is structural. Constant-union values compare as sets, object
// properties compare by name regardless of order, everything else compares in
// order.
func Equal(a, b Descriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Primitive:
		return a.Name == b.(*Primitive).Name
	case *Constant:
		return a.Value == b.(*Constant).Value
	case *ConstantUnion:
		return a.Values.Equal(b.(*ConstantUnion).Values)
	case *Union:
		return equalList(a.Types, b.(*Union).Types)
	case *Intersection:
		return equalList(a.Types, b.(*Intersection).Types)
	case *Array:
		return Equal(a.Element, b.(*Array).Element)
	case *Tuple:
		bt := b.(*Tuple)
		if len(a.Elements) != len(bt.Elements) {
			return false
		}
		for i, e := range a.Elements {
			o := bt.Elements[i]
			if e.Optional != o.Optional || e.Rest != o.Rest || !Equal(e.Type, o.Type) {
				return false
			}
		}
		return true
	case *Object:
		return equalObject(a, b.(*Object))
	case *External:
		return a.Name == b.(*External).Name
	}
	return false
}

func equalList(a, b []Descriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalObject(a, b *Object) bool {
	if len(a.Properties) != len(b.Properties) {
		return false
	}
	for _, p := range a.Properties {
		o, ok := b.Lookup(p.Name)
		if !ok || o.Optional != p.Optional || !Equal(p.Type, o.Type) {
			return false
		}
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	return a.Index == nil || Equal(a.Index.ValueType, b.Index.ValueType)
}
