package desc

// PrimitiveName names a base scalar type.
type PrimitiveName string

const (
	PrimitiveString  PrimitiveName = "string"
	PrimitiveNumber  PrimitiveName = "number"
	PrimitiveBoolean PrimitiveName = "boolean"
)

// Primitive describes a base scalar type.
type Primitive struct {
	base
	Name PrimitiveName
}

// Kind returns KindPrimitive.
func (d *Primitive) Kind() Kind { return KindPrimitive }

// String returns a Primitive for the string type.
func String() *Primitive { return &Primitive{Name: PrimitiveString} }

// Number returns a Primitive for the number type.
func Number() *Primitive { return &Primitive{Name: PrimitiveNumber} }

// Boolean returns a Primitive for the boolean type.
func Boolean() *Primitive { return &Primitive{Name: PrimitiveBoolean} }

// Constant describes a single literal value.
type Constant struct {
	base
	Value Literal
}

// Kind returns KindConstant.
func (d *Constant) Kind() Kind { return KindConstant }

// Const returns a Constant for the literal.
func Const(l Literal) *Constant { return &Constant{Value: l} }

// ConstantUnion describes a set of two or more distinct literal values.
type ConstantUnion struct {
	base
	Values LiteralSet
}

// Kind returns KindConstantUnion.
func (d *ConstantUnion) Kind() Kind { return KindConstantUnion }

// ConstUnion returns a ConstantUnion over the literals.
// Callers that may hold fewer than two distinct values should use Fold.
func ConstUnion(lits ...Literal) *ConstantUnion {
	return &ConstantUnion{Values: NewLiteralSet(lits...)}
}

// Union describes alternatives. After folding at most one member is a
// Constant or ConstantUnion and no member is itself a Union.
type Union struct {
	base
	Types []Descriptor
}

// Kind returns KindUnion.
func (d *Union) Kind() Kind { return KindUnion }

// Intersection describes a conjunction of shapes. Members are not merged.
type Intersection struct {
	base
	Types []Descriptor
}

// Kind returns KindIntersection.
func (d *Intersection) Kind() Kind { return KindIntersection }

// Intersect returns the intersection of the given types.
// A single type is returned as is.
func Intersect(types ...Descriptor) Descriptor {
	if len(types) == 1 {
		return types[0]
	}
	return &Intersection{Types: types}
}

// Array describes a homogeneous sequence.
type Array struct {
	base
	Element Descriptor
}

// Kind returns KindArray.
func (d *Array) Kind() Kind { return KindArray }

// ArrayOf returns an Array of element.
func ArrayOf(element Descriptor) *Array { return &Array{Element: element} }

// TupleElement is one position of a tuple.
//
// A rest element stands for zero or more trailing (or middle) values of Type;
// Type is the element type, not the array type.
type TupleElement struct {
	Type     Descriptor
	Optional bool
	Rest     bool
}

// Tuple describes a fixed arity sequence. At most one element is a rest element.
type Tuple struct {
	base
	Elements []TupleElement
}

// Kind returns KindTuple.
func (d *Tuple) Kind() Kind { return KindTuple }

// Property is a named member of an object shape.
type Property struct {
	Name     string
	Type     Descriptor
	Optional bool
}

// Index is the value type of a string index signature.
type Index struct {
	ValueType Descriptor
}

// Object describes a structural shape. Properties keep declaration order and
// names are unique.
type Object struct {
	base
	Properties []Property
	Index      *Index
}

// Kind returns KindObject.
func (d *Object) Kind() Kind { return KindObject }

// Lookup returns the property with the given name.
func (d *Object) Lookup(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// With returns a copy of d with p added, replacing any property of the same
// name in place.
func (d *Object) With(p Property) *Object {
	out := &Object{Properties: make([]Property, 0, len(d.Properties)+1), Index: d.Index}
	replaced := false
	for _, existing := range d.Properties {
		if existing.Name == p.Name {
			out.Properties = append(out.Properties, p)
			replaced = true
			continue
		}
		out.Properties = append(out.Properties, existing)
	}
	if !replaced {
		out.Properties = append(out.Properties, p)
	}
	return out
}

// WithIndex returns a copy of d with the index signature set to idx.
func (d *Object) WithIndex(idx *Index) *Object {
	out := &Object{Properties: make([]Property, len(d.Properties)), Index: idx}
	copy(out.Properties, d.Properties)
	return out
}

// Merge returns a copy of d with every property and the index of other laid
// on top. Properties of other win.
func (d *Object) Merge(other *Object) *Object {
	out := d.WithIndex(d.Index)
	for _, p := range other.Properties {
		out = out.With(p)
	}
	if other.Index != nil {
		out.Index = other.Index
	}
	return out
}

// External is an opaque reference to a type validated elsewhere.
type External struct {
	base
	// Name is "module-path:Qualified.Identifier".
	Name string
}

// Kind returns KindExternal.
func (d *External) Kind() Kind { return KindExternal }
