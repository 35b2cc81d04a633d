// Package desc defines Type Descriptors: finite, serializable trees that
// describe the shape of a value as written in TypeScript type syntax.
//
// Descriptors are values. Once built they are never mutated; code that needs a
// variation (for example an object with an extra property) builds a copy.
package desc

// Kind identifies the category of a type descriptor.
type Kind int

const (
	KindPrimitive     Kind = iota // string, number or boolean
	KindConstant                  // a single literal value
	KindConstantUnion             // two or more distinct literal values
	KindUnion                     // alternatives
	KindIntersection              // conjunctive shape
	KindArray                     // homogeneous sequence
	KindTuple                     // fixed arity sequence
	KindObject                    // structural shape
	KindExternal                  // opaque reference to an externally validated type
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindConstant:
		return "constant"
	case KindConstantUnion:
		return "constant_union"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Descriptor is the base interface for all type descriptors.
type Descriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// Ensure only types in this package can implement Descriptor.
	sealed()
}

type base struct{}

func (base) sealed() {}
