package oracle

import "github.com/broady/typedesc/syntax"

// Type is the nominal type declared by a symbol.
type Type interface {
	isType()
}

// ClassOrInterfaceType is the type declared by a class or interface.
type ClassOrInterfaceType struct {
	Symbol *Symbol
}

// UnionType is a union of types, as declared by an alias of a union.
type UnionType struct {
	Types []Type
}

// IntersectionType is an intersection of types.
type IntersectionType struct {
	Types []Type
}

// OtherType is any other type.
type OtherType struct{}

func (*ClassOrInterfaceType) isType() {}
func (*UnionType) isType()            {}
func (*IntersectionType) isType()     {}
func (*OtherType) isType()            {}

// HasMarker reports whether t, or any member of a union or intersection t,
// is a class or interface that is named marker or transitively extends or
// implements a type named marker.
//
// It is the common implementation of Oracle.ExtendsMarker for oracles whose
// heritage clauses resolve through SymbolOf.
func HasMarker(o Oracle, t Type, marker string) bool {
	return hasMarker(o, t, marker, make(map[syntax.Decl]bool))
}

func hasMarker(o Oracle, t Type, marker string, seen map[syntax.Decl]bool) bool {
	switch t := t.(type) {
	case *UnionType:
		for _, m := range t.Types {
			if hasMarker(o, m, marker, seen) {
				return true
			}
		}
	case *IntersectionType:
		for _, m := range t.Types {
			if hasMarker(o, m, marker, seen) {
				return true
			}
		}
	case *ClassOrInterfaceType:
		for _, d := range o.DeclarationsOf(t.Symbol) {
			if declExtendsMarker(o, d, marker, seen) {
				return true
			}
		}
	}
	return false
}

func declExtendsMarker(o Oracle, d syntax.Decl, marker string, seen map[syntax.Decl]bool) bool {
	if seen[d] {
		return false
	}
	seen[d] = true

	var heritage []*syntax.ExpressionWithTypeArguments
	switch d := d.(type) {
	case *syntax.ClassDecl:
		if d.Name == marker {
			return true
		}
		if d.Extends != nil {
			heritage = append(heritage, d.Extends)
		}
		heritage = append(heritage, d.Implements...)
	case *syntax.InterfaceDecl:
		if d.Name == marker {
			return true
		}
		heritage = d.Extends
	default:
		return false
	}

	for _, h := range heritage {
		sym := o.SymbolOf(h)
		if sym == nil {
			continue
		}
		if hasMarker(o, o.DeclaredTypeOf(sym), marker, seen) {
			return true
		}
	}
	return false
}
