package project

import (
	"fmt"

	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/syntax"
)

// symbol returns a symbol for decls. It is a library symbol when every
// declaration comes from a library module.
func (p *Program) symbol(decls []syntax.Decl) *oracle.Symbol {
	sym := &oracle.Symbol{
		Name:    decls[0].DeclName(),
		Decls:   decls,
		Library: true,
	}
	for _, d := range decls {
		info, ok := p.decls[d]
		if !ok || !info.module.Library {
			sym.Library = false
			break
		}
	}
	return sym
}

// SymbolOf returns the symbol a TypeReference, ExpressionWithTypeArguments
// or TypeQuery node was bound to.
func (p *Program) SymbolOf(node syntax.Node) *oracle.Symbol {
	return p.refs[node]
}

// DeclarationsOf returns the declarations of sym.
func (p *Program) DeclarationsOf(sym *oracle.Symbol) []syntax.Decl {
	if sym == nil {
		return nil
	}
	return sym.Decls
}

// DeclaredTypeOf returns the type declared by sym. Aliases are followed to
// the type they name.
func (p *Program) DeclaredTypeOf(sym *oracle.Symbol) oracle.Type {
	return p.declaredType(sym, make(map[syntax.Decl]bool))
}

func (p *Program) declaredType(sym *oracle.Symbol, seen map[syntax.Decl]bool) oracle.Type {
	if sym == nil {
		return &oracle.OtherType{}
	}
	for _, d := range sym.Decls {
		switch d.(type) {
		case *syntax.ClassDecl, *syntax.InterfaceDecl:
			return &oracle.ClassOrInterfaceType{Symbol: sym}
		}
	}
	if len(sym.Decls) == 1 {
		if a, ok := sym.Decls[0].(*syntax.TypeAliasDecl); ok && !seen[a] {
			seen[a] = true
			return p.typeOfNode(a.Type, seen)
		}
	}
	return &oracle.OtherType{}
}

func (p *Program) typeOfNode(n syntax.TypeNode, seen map[syntax.Decl]bool) oracle.Type {
	switch n := n.(type) {
	case *syntax.Paren:
		return p.typeOfNode(n.Type, seen)
	case *syntax.Union:
		u := &oracle.UnionType{}
		for _, t := range n.Types {
			u.Types = append(u.Types, p.typeOfNode(t, seen))
		}
		return u
	case *syntax.Intersection:
		i := &oracle.IntersectionType{}
		for _, t := range n.Types {
			i.Types = append(i.Types, p.typeOfNode(t, seen))
		}
		return i
	case *syntax.TypeReference, *syntax.ExpressionWithTypeArguments:
		return p.declaredType(p.refs[n], seen)
	}
	return &oracle.OtherType{}
}

// ExtendsMarker reports whether t is, extends or implements a class or
// interface named marker.
func (p *Program) ExtendsMarker(t oracle.Type, marker string) bool {
	return oracle.HasMarker(p, t, marker)
}

// CanonicalPathOf returns the module and identifier path of a module-level
// or namespace-level declaration.
func (p *Program) CanonicalPathOf(decl syntax.Decl) (oracle.Path, error) {
	info, ok := p.decls[decl]
	if !ok {
		return oracle.Path{}, fmt.Errorf("%s: %s is not declared at module or namespace level", decl.Pos(), decl.DeclName())
	}
	return oracle.Path{
		Module:      info.module.Path,
		Identifiers: append([]string(nil), info.identifiers...),
	}, nil
}
