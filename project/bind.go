package project

import (
	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/syntax"
)

// binder resolves every reference of the program. Type references and
// heritage entries are bound while walking; typeof queries are bound
// afterwards because they may need the bindings of property types anywhere
// in the program.
type binder struct {
	p       *Program
	queries map[*syntax.TypeQuery]*scope
	order   []*syntax.TypeQuery
}

func (b *binder) module(m *Module) {
	if b.queries == nil {
		b.queries = make(map[*syntax.TypeQuery]*scope)
	}
	b.decls(m.File.Decls, m.scope)
}

func (b *binder) decls(decls []syntax.Decl, s *scope) {
	for _, d := range decls {
		b.decl(d, s)
	}
}

func (b *binder) decl(d syntax.Decl, s *scope) {
	switch d := d.(type) {
	case *syntax.InterfaceDecl:
		inner := b.typeParams(d.TypeParams, s)
		for _, h := range d.Extends {
			b.typ(h, inner)
		}
		b.members(d.Members, inner)

	case *syntax.TypeAliasDecl:
		inner := b.typeParams(d.TypeParams, s)
		b.typ(d.Type, inner)

	case *syntax.ClassDecl:
		inner := b.typeParams(d.TypeParams, s)
		if d.Extends != nil {
			b.typ(d.Extends, inner)
		}
		for _, h := range d.Implements {
			b.typ(h, inner)
		}
		for _, m := range d.Methods {
			ms := newScope(inner)
			for _, param := range m.Params {
				if !param.Destructured {
					ms.declare(param)
				}
			}
			for _, param := range m.Params {
				b.typ(param.Type, ms)
			}
		}

	case *syntax.VariableDecl:
		b.typ(d.Type, s)

	case *syntax.NamespaceDecl:
		ns := newScope(s)
		for _, inner := range d.Decls {
			ns.declare(inner)
		}
		b.decls(d.Decls, ns)
	}
}

// typeParams returns the scope of a generic declaration's body and binds the
// parameters' constraints and defaults in it.
func (b *binder) typeParams(params []*syntax.TypeParamDecl, s *scope) *scope {
	if len(params) == 0 {
		return s
	}
	inner := newScope(s)
	for _, tp := range params {
		inner.declare(tp)
	}
	for _, tp := range params {
		b.typ(tp.Constraint, inner)
		b.typ(tp.Default, inner)
	}
	return inner
}

func (b *binder) members(members []syntax.Member, s *scope) {
	for _, m := range members {
		switch m := m.(type) {
		case *syntax.PropertySignature:
			b.typ(m.Type, s)
		case *syntax.IndexSignature:
			b.typ(m.Key, s)
			b.typ(m.Value, s)
		}
	}
}

func (b *binder) typ(n syntax.TypeNode, s *scope) {
	switch n := n.(type) {
	case *syntax.Paren:
		b.typ(n.Type, s)
	case *syntax.Union:
		for _, t := range n.Types {
			b.typ(t, s)
		}
	case *syntax.Intersection:
		for _, t := range n.Types {
			b.typ(t, s)
		}
	case *syntax.ArrayOf:
		b.typ(n.Element, s)
	case *syntax.Readonly:
		b.typ(n.Type, s)
	case *syntax.Tuple:
		for _, t := range n.Elements {
			b.typ(t, s)
		}
	case *syntax.NamedTupleMember:
		b.typ(n.Type, s)
	case *syntax.OptionalType:
		b.typ(n.Type, s)
	case *syntax.RestType:
		b.typ(n.Type, s)
	case *syntax.ObjectShape:
		b.members(n.Members, s)
	case *syntax.TypeReference:
		b.bind(n, b.p.lookupQualified(s, n.Name, meaningType))
		for _, t := range n.TypeArgs {
			b.typ(t, s)
		}
	case *syntax.ExpressionWithTypeArguments:
		b.bind(n, b.p.lookupQualified(s, n.Expr, meaningType))
		for _, t := range n.TypeArgs {
			b.typ(t, s)
		}
	case *syntax.IndexedAccess:
		b.typ(n.Object, s)
		b.typ(n.Index, s)
	case *syntax.Mapped:
		b.typ(n.Param.Constraint, s)
		inner := newScope(s)
		inner.declare(n.Param)
		b.typ(n.Value, inner)
	case *syntax.KeyOf:
		b.typ(n.Type, s)
	case *syntax.TypeQuery:
		if _, ok := b.queries[n]; !ok {
			b.queries[n] = s
			b.order = append(b.order, n)
		}
	}
}

func (b *binder) bind(n syntax.Node, r resolved) {
	if len(r.decls) == 0 {
		return
	}
	b.p.refs[n] = b.p.symbol(r.decls)
}

// resolveQueries binds every typeof query.
func (b *binder) resolveQueries() {
	for _, q := range b.order {
		b.query(q, make(map[syntax.Node]bool))
	}
}

// query binds q to the declaration of the value it names. a.b.c walks
// namespaces and module namespace objects, and through the annotated type
// of a variable, parameter or property into its properties.
func (b *binder) query(q *syntax.TypeQuery, seen map[syntax.Node]bool) *oracle.Symbol {
	if sym, ok := b.p.refs[q]; ok {
		return sym
	}
	if seen[q] {
		return nil
	}
	seen[q] = true

	s := b.queries[q]
	if s == nil {
		return nil
	}
	r := b.p.lookup(s, q.Expr[0], meaningValue|meaningNamespace)
	for _, name := range q.Expr[1:] {
		next := b.p.member(r, name, meaningValue|meaningNamespace)
		for _, d := range r.decls {
			if t := annotation(d); t != nil {
				next.decls = append(next.decls, b.property(t, name, seen)...)
			}
		}
		r = next
	}

	var decls []syntax.Decl
	for _, d := range r.decls {
		if meaningOf(d)&meaningValue != 0 {
			decls = append(decls, d)
		}
	}
	if len(decls) == 0 {
		return nil
	}
	sym := b.p.symbol(decls)
	b.p.refs[q] = sym
	return sym
}

// property returns the declarations of the property name of type t.
func (b *binder) property(t syntax.TypeNode, name string, seen map[syntax.Node]bool) []syntax.Decl {
	if q, ok := t.(*syntax.TypeQuery); ok {
		sym := b.query(q, seen)
		if sym == nil {
			return nil
		}
		var out []syntax.Decl
		for _, d := range sym.Decls {
			if at := annotation(d); at != nil {
				out = append(out, b.property(at, name, seen)...)
			}
		}
		return out
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	switch t := t.(type) {
	case *syntax.Paren:
		return b.property(t.Type, name, seen)
	case *syntax.Readonly:
		return b.property(t.Type, name, seen)
	case *syntax.ObjectShape:
		return ownProperty(t.Members, name)
	case *syntax.Intersection:
		var out []syntax.Decl
		for _, m := range t.Types {
			out = append(out, b.property(m, name, seen)...)
		}
		return out
	case *syntax.TypeReference, *syntax.ExpressionWithTypeArguments:
		sym := b.p.refs[t]
		if sym == nil {
			return nil
		}
		var out []syntax.Decl
		for _, d := range sym.Decls {
			switch d := d.(type) {
			case *syntax.InterfaceDecl:
				if own := ownProperty(d.Members, name); len(own) > 0 {
					out = append(out, own...)
					continue
				}
				for _, h := range d.Extends {
					if inherited := b.property(h, name, seen); len(inherited) > 0 {
						out = append(out, inherited...)
						break
					}
				}
			case *syntax.TypeAliasDecl:
				out = append(out, b.property(d.Type, name, seen)...)
			}
		}
		return out
	}
	return nil
}

func ownProperty(members []syntax.Member, name string) []syntax.Decl {
	var out []syntax.Decl
	for _, m := range members {
		if p, ok := m.(*syntax.PropertySignature); ok && p.Name == name {
			out = append(out, p)
		}
	}
	return out
}

// annotation returns the declared type of a value declaration.
func annotation(d syntax.Decl) syntax.TypeNode {
	switch d := d.(type) {
	case *syntax.VariableDecl:
		return d.Type
	case *syntax.ParameterDecl:
		return d.Type
	case *syntax.PropertySignature:
		return d.Type
	}
	return nil
}
