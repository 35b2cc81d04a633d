package describe

import (
	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

// describeIndexedAccess describes Object["key"] as the type of the named
// property. The property's optional flag is not carried over.
func (d *describer) describeIndexedAccess(n *syntax.IndexedAccess, subst *Substitution) (desc.Descriptor, error) {
	base, err := d.describe(n.Object, subst)
	if err != nil {
		return nil, err
	}
	obj, ok := base.(*desc.Object)
	if !ok {
		return nil, errorf(n.Object, CodeNonObjectIndexBase, "indexed type must be an object type, got %s", base.Kind())
	}

	key, err := d.describe(n.Index, subst)
	if err != nil {
		return nil, err
	}
	name, ok := stringConstant(key)
	if !ok {
		return nil, errorf(n.Index, CodeNonConstantIndex, "index must be a single string literal type, got %s", key.Kind())
	}
	p, ok := obj.Lookup(name)
	if !ok {
		return nil, errorf(n, CodeMissingProperty, "object type has no property %q", name)
	}
	return p.Type, nil
}

// describeMapped expands { [K in C]: V } into an object with one property per
// key of C, describing V with K bound to that key.
func (d *describer) describeMapped(n *syntax.Mapped, subst *Substitution) (desc.Descriptor, error) {
	if n.Remapped {
		return nil, unsupported(n, "key remapping in mapped types is not supported")
	}
	if n.Param.Constraint == nil {
		return nil, errorf(n, CodeNonLiteralKeySet, "mapped type has no key set")
	}
	keys, err := d.describe(n.Param.Constraint, subst)
	if err != nil {
		return nil, err
	}

	var names []string
	switch k := keys.(type) {
	case *desc.Constant:
		if s, ok := k.Value.StringValue(); ok {
			names = append(names, s)
		}
	case *desc.ConstantUnion:
		for _, l := range k.Values.Items() {
			s, ok := l.StringValue()
			if !ok {
				names = nil
				break
			}
			names = append(names, s)
		}
	}
	if names == nil {
		return nil, errorf(n.Param.Constraint, CodeNonLiteralKeySet, "keys of a mapped type must be string literals, got %s", keys.Kind())
	}
	if n.Value == nil {
		return nil, errorf(n, CodeMissingPropertyType, "mapped type has no value type")
	}

	obj := &desc.Object{Properties: make([]desc.Property, 0, len(names))}
	for _, name := range names {
		t, err := d.describe(n.Value, subst.Bind(n.Param, desc.Const(desc.Str(name))))
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, desc.Property{
			Name:     name,
			Type:     t,
			Optional: n.Optional == syntax.ModifierAdd,
		})
	}
	return obj, nil
}

// describeKeyOf describes keyof T for an object type T: string when T has an
// index signature, otherwise the literal set of its property names.
func (d *describer) describeKeyOf(n *syntax.KeyOf, subst *Substitution) (desc.Descriptor, error) {
	t, err := d.describe(n.Type, subst)
	if err != nil {
		return nil, err
	}
	obj, ok := t.(*desc.Object)
	if !ok {
		return nil, unsupported(n, "keyof is only supported on object types, got %s", t.Kind())
	}
	if obj.Index != nil {
		return desc.String(), nil
	}
	if len(obj.Properties) == 0 {
		return nil, unsupported(n, "keyof an object type without properties has no keys")
	}
	keys := make([]desc.Descriptor, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		keys = append(keys, desc.Const(desc.Str(p.Name)))
	}
	return desc.Fold(keys...), nil
}

// describeTypeQuery describes typeof x through the explicit annotation of the
// single declaration of x.
func (d *describer) describeTypeQuery(n *syntax.TypeQuery) (desc.Descriptor, error) {
	name := refName(n)
	sym := d.oracle.SymbolOf(n)
	if sym == nil {
		return nil, unsupported(n, "cannot resolve %s", name)
	}
	decls := d.oracle.DeclarationsOf(sym)
	switch len(decls) {
	case 0:
		return nil, unsupported(n, "%s has no declaration", name)
	case 1:
	default:
		return nil, errorf(n, CodeAmbiguousDeclaration, "%s has %d declarations", name, len(decls))
	}

	var ann syntax.TypeNode
	switch decl := decls[0].(type) {
	case *syntax.VariableDecl:
		ann = decl.Type
	case *syntax.ParameterDecl:
		ann = decl.Type
	case *syntax.PropertySignature:
		ann = decl.Type
	default:
		return nil, errorf(n, CodeNoExplicitAnnotation, "typeof %s: not a variable, parameter or property", name)
	}
	if ann == nil {
		return nil, errorf(n, CodeNoExplicitAnnotation, "typeof %s: declaration has no type annotation", name)
	}

	decl := decls[0]
	if d.active[decl] {
		return nil, errorf(n, CodeRecursiveType, "typeof %s refers to itself", name)
	}
	d.active[decl] = true
	defer delete(d.active, decl)
	return d.describe(ann, nil)
}

func stringConstant(t desc.Descriptor) (string, bool) {
	c, ok := t.(*desc.Constant)
	if !ok {
		return "", false
	}
	return c.Value.StringValue()
}
