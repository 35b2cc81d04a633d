package tsparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/typedesc/syntax"
)

// statement lowers one statement into out. f is non-nil only at the top level
// of a file, where imports and export lists are recorded.
func (l *lowerer) statement(n *sitter.Node, f *syntax.File, out *[]syntax.Decl, exported bool) {
	switch n.Type() {
	case "export_statement":
		l.exportStatement(n, f, out)

	case "import_statement":
		if f != nil {
			if imp := l.importStatement(n); imp != nil {
				f.Imports = append(f.Imports, imp)
			}
		}

	case "ambient_declaration":
		// declare ... / declare global { ... }
		for _, c := range namedChildren(n) {
			if c.Type() == "statement_block" {
				for _, s := range namedChildren(c) {
					l.statement(s, f, out, exported)
				}
				continue
			}
			l.statement(c, f, out, exported)
		}

	case "expression_statement":
		// namespace A {} parses as an expression statement in some positions.
		for _, c := range namedChildren(n) {
			if c.Type() == "internal_module" {
				l.statement(c, f, out, exported)
			}
		}

	case "internal_module", "module":
		if ns := l.namespace(n, exported); ns != nil {
			*out = append(*out, ns)
		}

	case "interface_declaration":
		*out = append(*out, l.interfaceDecl(n, exported))

	case "type_alias_declaration":
		*out = append(*out, &syntax.TypeAliasDecl{
			Span:       l.span(n),
			Name:       l.text(n.ChildByFieldName("name")),
			Exported:   exported,
			TypeParams: l.typeParams(n.ChildByFieldName("type_parameters")),
			Type:       l.typ(field(n, "value", "type")),
		})

	case "class_declaration", "abstract_class_declaration", "class":
		if c := l.classDecl(n, exported); c != nil {
			*out = append(*out, c)
		}

	case "enum_declaration":
		*out = append(*out, l.enumDecl(n, exported))

	case "lexical_declaration", "variable_declaration":
		for _, c := range namedChildren(n) {
			if c.Type() != "variable_declarator" {
				continue
			}
			name := c.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" {
				continue
			}
			v := &syntax.VariableDecl{
				Span:     l.span(c),
				Name:     l.text(name),
				Exported: exported,
			}
			if t := c.ChildByFieldName("type"); t != nil {
				v.Type = l.typ(t)
			}
			*out = append(*out, v)
		}

	case "function_declaration", "function_signature", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			*out = append(*out, &syntax.FunctionDecl{
				Span:     l.span(n),
				Name:     l.text(name),
				Exported: exported,
			})
		}
	}
}

func (l *lowerer) exportStatement(n *sitter.Node, f *syntax.File, out *[]syntax.Decl) {
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		l.statement(decl, f, out, true)
		return
	}

	if hasToken(n, "default") {
		// export default class X {} still declares X locally.
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "class_declaration", "abstract_class_declaration", "class", "function_declaration":
				l.statement(c, f, out, false)
			}
		}
		return
	}

	exp := &syntax.Export{Span: l.span(n)}
	if src := n.ChildByFieldName("source"); src != nil {
		exp.Module = unquote(l.text(src))
	}
	clause := childOfType(n, "export_clause")
	switch {
	case clause != nil:
		for _, spec := range namedChildren(clause) {
			if spec.Type() != "export_specifier" {
				continue
			}
			name := l.text(field(spec, "name"))
			alias := name
			if a := spec.ChildByFieldName("alias"); a != nil {
				alias = l.text(a)
			}
			exp.Names = append(exp.Names, syntax.ImportName{Name: name, Alias: alias})
		}
	case hasToken(n, "*") && exp.Module != "" && childOfType(n, "namespace_export") == nil:
		exp.All = true
	default:
		// export = x, export * as ns from "...", export default expressions.
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "interface_declaration", "type_alias_declaration", "class_declaration",
				"abstract_class_declaration", "enum_declaration", "lexical_declaration",
				"variable_declaration", "function_declaration", "function_signature",
				"internal_module", "module", "ambient_declaration":
				l.statement(c, f, out, true)
			}
		}
		return
	}
	if f != nil {
		f.Exports = append(f.Exports, exp)
	}
}

func (l *lowerer) importStatement(n *sitter.Node) *syntax.Import {
	src := n.ChildByFieldName("source")
	if src == nil {
		src = childOfType(n, "string")
	}
	if src == nil {
		return nil
	}
	imp := &syntax.Import{
		Span:   l.span(n),
		Module: unquote(l.text(src)),
	}
	clause := childOfType(n, "import_clause")
	for _, c := range namedChildren(clause) {
		switch c.Type() {
		case "identifier":
			imp.Default = l.text(c)
		case "namespace_import":
			for _, id := range namedChildren(c) {
				if id.Type() == "identifier" {
					imp.Namespace = l.text(id)
				}
			}
		case "named_imports":
			for _, spec := range namedChildren(c) {
				if spec.Type() != "import_specifier" {
					continue
				}
				name := l.text(field(spec, "name"))
				alias := name
				if a := spec.ChildByFieldName("alias"); a != nil {
					alias = l.text(a)
				}
				imp.Names = append(imp.Names, syntax.ImportName{Name: name, Alias: alias})
			}
		}
	}
	return imp
}

func (l *lowerer) namespace(n *sitter.Node, exported bool) *syntax.NamespaceDecl {
	name := n.ChildByFieldName("name")
	if name == nil || name.Type() == "string" {
		// declare module "x" { } augments another module.
		return nil
	}
	parts := qualified(l.text(name))

	inner := &syntax.NamespaceDecl{
		Span:     l.span(n),
		Name:     parts[len(parts)-1],
		Exported: exported || len(parts) > 1,
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for _, s := range namedChildren(body) {
			l.statement(s, nil, &inner.Decls, false)
		}
	}

	// namespace A.B { } is namespace A { export namespace B { } }.
	ns := inner
	for i := len(parts) - 2; i >= 0; i-- {
		ns = &syntax.NamespaceDecl{
			Span:     l.span(n),
			Name:     parts[i],
			Exported: exported && i == 0,
			Decls:    []syntax.Decl{ns},
		}
	}
	return ns
}

func (l *lowerer) interfaceDecl(n *sitter.Node, exported bool) *syntax.InterfaceDecl {
	d := &syntax.InterfaceDecl{
		Span:       l.span(n),
		Name:       l.text(n.ChildByFieldName("name")),
		Exported:   exported,
		TypeParams: l.typeParams(n.ChildByFieldName("type_parameters")),
	}
	if ext := childOfType(n, "extends_type_clause"); ext != nil {
		for _, c := range namedChildren(ext) {
			d.Extends = append(d.Extends, l.heritageType(c))
		}
	}
	body := field(n, "body")
	if body == nil {
		body = childOfType(n, "interface_body", "object_type")
	}
	d.Members = l.members(body)
	return d
}

func (l *lowerer) classDecl(n *sitter.Node, exported bool) *syntax.ClassDecl {
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	d := &syntax.ClassDecl{
		Span:       l.span(n),
		Name:       l.text(name),
		Exported:   exported,
		Abstract:   n.Type() == "abstract_class_declaration" || hasToken(n, "abstract"),
		TypeParams: l.typeParams(n.ChildByFieldName("type_parameters")),
	}

	if heritage := childOfType(n, "class_heritage"); heritage != nil {
		if ext := childOfType(heritage, "extends_clause"); ext != nil {
			if value := field(ext, "value"); value != nil {
				e := &syntax.ExpressionWithTypeArguments{
					Span: l.span(value),
					Expr: qualified(l.text(value)),
				}
				if args := field(ext, "type_arguments"); args != nil {
					e.TypeArgs = l.typeArgs(args)
				}
				d.Extends = e
			}
		}
		if impl := childOfType(heritage, "implements_clause"); impl != nil {
			for _, c := range namedChildren(impl) {
				d.Implements = append(d.Implements, l.heritageType(c))
			}
		}
	}

	body := field(n, "body")
	for _, m := range namedChildren(body) {
		switch m.Type() {
		case "method_definition", "abstract_method_signature":
			if method := l.method(m); method != nil {
				d.Methods = append(d.Methods, method)
			}
		}
	}
	return d
}

// method lowers a method of a class body. Constructors and accessors are not
// methods.
func (l *lowerer) method(n *sitter.Node) *syntax.MethodDecl {
	name := l.text(n.ChildByFieldName("name"))
	if name == "" || name == "constructor" || hasToken(n, "get") || hasToken(n, "set") {
		return nil
	}
	m := &syntax.MethodDecl{
		Span:     l.span(n),
		Name:     name,
		Static:   hasToken(n, "static"),
		Abstract: n.Type() == "abstract_method_signature" || hasToken(n, "abstract"),
	}
	for _, p := range namedChildren(n.ChildByFieldName("parameters")) {
		if param := l.parameter(p); param != nil {
			m.Params = append(m.Params, param)
		}
	}
	return m
}

func (l *lowerer) parameter(n *sitter.Node) *syntax.ParameterDecl {
	if n.Type() != "required_parameter" && n.Type() != "optional_parameter" {
		return nil
	}
	pattern := field(n, "pattern", "name")
	if pattern == nil {
		return nil
	}
	p := &syntax.ParameterDecl{
		Span:           l.span(n),
		Name:           l.text(pattern),
		Optional:       n.Type() == "optional_parameter",
		HasInitializer: n.ChildByFieldName("value") != nil,
	}
	switch pattern.Type() {
	case "this":
		return nil
	case "identifier":
	case "rest_pattern":
		p.Rest = true
		if id := namedChildren(pattern); len(id) == 1 && id[0].Type() == "identifier" {
			p.Name = l.text(id[0])
		} else {
			p.Destructured = true
		}
	default:
		p.Destructured = true
	}
	if t := n.ChildByFieldName("type"); t != nil {
		p.Type = l.typ(t)
	}
	return p
}

func (l *lowerer) enumDecl(n *sitter.Node, exported bool) *syntax.EnumDecl {
	d := &syntax.EnumDecl{
		Span:     l.span(n),
		Name:     l.text(n.ChildByFieldName("name")),
		Exported: exported,
		Const:    hasToken(n, "const"),
	}
	for _, m := range namedChildren(n.ChildByFieldName("body")) {
		switch m.Type() {
		case "property_identifier":
			d.Members = append(d.Members, l.text(m))
		case "string":
			d.Members = append(d.Members, unquote(l.text(m)))
		case "enum_assignment":
			d.Members = append(d.Members, l.propertyName(field(m, "name")))
		}
	}
	return d
}

func (l *lowerer) typeParams(n *sitter.Node) []*syntax.TypeParamDecl {
	var out []*syntax.TypeParamDecl
	for _, c := range namedChildren(n) {
		if c.Type() != "type_parameter" {
			continue
		}
		p := &syntax.TypeParamDecl{
			Span: l.span(c),
			Name: l.text(c.ChildByFieldName("name")),
		}
		if cons := c.ChildByFieldName("constraint"); cons != nil {
			if t := namedChildren(cons); len(t) > 0 {
				p.Constraint = l.typ(t[0])
			}
		}
		if def := c.ChildByFieldName("value"); def != nil {
			if t := namedChildren(def); len(t) > 0 {
				p.Default = l.typ(t[0])
			}
		}
		out = append(out, p)
	}
	return out
}

func (l *lowerer) typeArgs(n *sitter.Node) []syntax.TypeNode {
	var out []syntax.TypeNode
	for _, c := range namedChildren(n) {
		out = append(out, l.typ(c))
	}
	return out
}

// heritageType lowers an entry of an extends or implements clause written as
// a type: Name, ns.Name or Name<Args>.
func (l *lowerer) heritageType(n *sitter.Node) *syntax.ExpressionWithTypeArguments {
	e := &syntax.ExpressionWithTypeArguments{Span: l.span(n)}
	if n.Type() == "generic_type" {
		e.Expr = qualified(l.text(field(n, "name")))
		args := field(n, "type_arguments")
		if args == nil {
			args = childOfType(n, "type_arguments")
		}
		e.TypeArgs = l.typeArgs(args)
		return e
	}
	e.Expr = qualified(l.text(n))
	return e
}
