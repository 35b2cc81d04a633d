package describe

import (
	"strings"

	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

// describeReference describes a named type reference or heritage entry.
func (d *describer) describeReference(ref syntax.Node, typeArgs []syntax.TypeNode, subst *Substitution) (desc.Descriptor, error) {
	name := refName(ref)
	sym := d.oracle.SymbolOf(ref)
	if sym == nil {
		return nil, unsupported(ref, "cannot resolve type %s", name)
	}

	if ext, ok, err := d.external(ref, sym); err != nil || ok {
		return ext, err
	}

	if sym.Library {
		if sym.Name == "Array" || sym.Name == "ReadonlyArray" {
			if len(typeArgs) != 1 {
				return nil, unsupported(ref, "%s needs exactly one type argument", sym.Name)
			}
			el, err := d.describe(typeArgs[0], subst)
			if err != nil {
				return nil, err
			}
			return desc.ArrayOf(el), nil
		}
		return nil, unsupported(ref, "library type %s is not supported", name)
	}

	decls := d.oracle.DeclarationsOf(sym)
	switch len(decls) {
	case 0:
		return nil, unsupported(ref, "%s has no declaration", name)
	case 1:
	default:
		return nil, errorf(ref, CodeAmbiguousDeclaration, "%s has %d declarations", name, len(decls))
	}
	return d.resolveDeclaration(ref, decls[0], typeArgs, subst)
}

// resolveDeclaration expands decl as referenced by ref with typeArgs.
// Type arguments are described under the caller's substitution before decl
// is entered, so an argument may itself instantiate decl.
func (d *describer) resolveDeclaration(ref syntax.Node, decl syntax.Decl, typeArgs []syntax.TypeNode, subst *Substitution) (desc.Descriptor, error) {
	var params []*syntax.TypeParamDecl
	switch decl := decl.(type) {
	case *syntax.ClassDecl:
		return nil, errorf(ref, CodeClassTypeUnsupported, "class %s cannot be described, use an interface or mark it as an external type", decl.Name)
	case *syntax.EnumDecl:
		return nil, errorf(ref, CodeEnumTypeUnsupported, "enum %s cannot be described, use a union of literals", decl.Name)
	case *syntax.InterfaceDecl:
		params = decl.TypeParams
	case *syntax.TypeAliasDecl:
		params = decl.TypeParams
	case *syntax.TypeParamDecl:
	default:
		return nil, unsupported(ref, "%s does not name a type", decl.DeclName())
	}

	inner, err := d.bindTypeArgs(ref, decl, params, typeArgs, subst)
	if err != nil {
		return nil, err
	}

	if d.active[decl] {
		return nil, errorf(ref, CodeRecursiveType, "%s refers to itself", decl.DeclName())
	}
	d.active[decl] = true
	defer delete(d.active, decl)

	switch decl := decl.(type) {
	case *syntax.TypeParamDecl:
		if t, ok := subst.Lookup(decl); ok {
			return t, nil
		}
		if decl.Default != nil {
			return d.describe(decl.Default, subst)
		}
		return nil, errorf(ref, CodeUnresolvedTypeParameter, "type parameter %s has no value", decl.Name)
	case *syntax.InterfaceDecl:
		obj, err := d.describeInterface(decl, inner)
		if err != nil {
			return nil, err
		}
		return obj, nil
	case *syntax.TypeAliasDecl:
		return d.describe(decl.Type, inner)
	}
	panic("unreachable")
}

// bindTypeArgs returns the substitution for the body of decl: each parameter
// bound to its described argument. Parameters without an argument stay
// unbound so that references to them fall back to their default.
func (d *describer) bindTypeArgs(ref syntax.Node, decl syntax.Decl, params []*syntax.TypeParamDecl, typeArgs []syntax.TypeNode, subst *Substitution) (*Substitution, error) {
	if len(typeArgs) > len(params) {
		return nil, unsupported(ref, "%s takes %d type arguments, got %d", decl.DeclName(), len(params), len(typeArgs))
	}
	var inner *Substitution
	for i, arg := range typeArgs {
		t, err := d.describe(arg, subst)
		if err != nil {
			return nil, err
		}
		inner = inner.Bind(params[i], t)
	}
	return inner, nil
}

func (d *describer) describeInterface(decl *syntax.InterfaceDecl, subst *Substitution) (*desc.Object, error) {
	base := &desc.Object{}
	for _, h := range decl.Extends {
		t, err := d.describe(h, subst)
		if err != nil {
			return nil, err
		}
		obj, ok := t.(*desc.Object)
		if !ok {
			return nil, errorf(h, CodeNonObjectHeritage, "%s extends %s, which is not an object type (%s)", decl.Name, refName(h), t.Kind())
		}
		base = base.Merge(obj)
	}
	return d.describeMembers(decl.Members, base, subst)
}

func refName(n syntax.Node) string {
	switch n := n.(type) {
	case *syntax.TypeReference:
		return strings.Join(n.Name, ".")
	case *syntax.ExpressionWithTypeArguments:
		return strings.Join(n.Expr, ".")
	case *syntax.TypeQuery:
		return strings.Join(n.Expr, ".")
	case syntax.Decl:
		return n.DeclName()
	}
	return n.Pos().Text
}
