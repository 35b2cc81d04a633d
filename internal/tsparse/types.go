package tsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/typedesc/syntax"
)

// typ lowers a type node. Annotation wrappers (": T", "?: T", ...) are
// unwrapped.
func (l *lowerer) typ(n *sitter.Node) syntax.TypeNode {
	if n == nil {
		return nil
	}
	span := l.span(n)
	kids := namedChildren(n)
	first := func() syntax.TypeNode {
		if len(kids) == 0 {
			return &syntax.Unsupported{Span: span, What: "empty " + n.Type()}
		}
		return l.typ(kids[0])
	}

	switch n.Type() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation", "adding_type_annotation":
		return first()

	case "parenthesized_type":
		return &syntax.Paren{Span: span, Type: first()}

	case "predefined_type":
		return &syntax.Keyword{Span: span, Name: strings.TrimSpace(l.text(n))}

	case "type_identifier", "identifier":
		return &syntax.TypeReference{Span: span, Name: []string{l.text(n)}}

	case "nested_type_identifier":
		return &syntax.TypeReference{Span: span, Name: qualified(l.text(n))}

	case "generic_type":
		name := field(n, "name")
		if name == nil && len(kids) > 0 {
			name = kids[0]
		}
		args := field(n, "type_arguments")
		if args == nil {
			args = childOfType(n, "type_arguments")
		}
		return &syntax.TypeReference{
			Span:     span,
			Name:     qualified(l.text(name)),
			TypeArgs: l.typeArgs(args),
		}

	case "literal_type":
		return l.literal(n)

	case "union_type":
		return &syntax.Union{Span: span, Types: l.flatten(n, "union_type")}

	case "intersection_type":
		return &syntax.Intersection{Span: span, Types: l.flatten(n, "intersection_type")}

	case "array_type":
		return &syntax.ArrayOf{Span: span, Element: first()}

	case "readonly_type":
		return &syntax.Readonly{Span: span, Type: first()}

	case "tuple_type":
		t := &syntax.Tuple{Span: span}
		for _, c := range kids {
			t.Elements = append(t.Elements, l.tupleElement(c))
		}
		return t

	case "optional_type":
		return &syntax.OptionalType{Span: span, Type: first()}

	case "rest_type":
		return &syntax.RestType{Span: span, Type: first()}

	case "object_type", "interface_body":
		if m := l.mapped(n); m != nil {
			return m
		}
		return &syntax.ObjectShape{Span: span, Members: l.members(n)}

	case "lookup_type":
		if len(kids) != 2 {
			return &syntax.Unsupported{Span: span, What: "indexed access type"}
		}
		return &syntax.IndexedAccess{Span: span, Object: l.typ(kids[0]), Index: l.typ(kids[1])}

	case "index_type_query":
		return &syntax.KeyOf{Span: span, Type: first()}

	case "type_query":
		if len(kids) == 1 {
			switch kids[0].Type() {
			case "identifier", "member_expression", "nested_identifier":
				return &syntax.TypeQuery{Span: span, Expr: qualified(l.text(kids[0]))}
			}
		}
		return &syntax.Unsupported{Span: span, What: "typeof of an expression"}

	case "this_type", "this":
		return &syntax.Unsupported{Span: span, What: "this type"}
	case "function_type":
		return &syntax.Unsupported{Span: span, What: "function type"}
	case "constructor_type":
		return &syntax.Unsupported{Span: span, What: "constructor type"}
	case "conditional_type":
		return &syntax.Unsupported{Span: span, What: "conditional type"}
	case "infer_type":
		return &syntax.Unsupported{Span: span, What: "infer type"}
	case "template_literal_type", "template_type":
		return &syntax.Unsupported{Span: span, What: "template literal type"}
	}
	return &syntax.Unsupported{Span: span, What: strings.ReplaceAll(n.Type(), "_", " ")}
}

// flatten returns the operands of a chain of binary union or intersection
// nodes of the given type.
func (l *lowerer) flatten(n *sitter.Node, typ string) []syntax.TypeNode {
	var out []syntax.TypeNode
	for _, c := range namedChildren(n) {
		if c.Type() == typ {
			out = append(out, l.flatten(c, typ)...)
			continue
		}
		out = append(out, l.typ(c))
	}
	return out
}

func (l *lowerer) literal(n *sitter.Node) syntax.TypeNode {
	span := l.span(n)
	kids := namedChildren(n)
	if len(kids) != 1 {
		return &syntax.Unsupported{Span: span, What: "literal type"}
	}
	c := kids[0]
	switch c.Type() {
	case "string":
		return &syntax.Literal{Span: span, Kind: syntax.LitString, Text: unquote(l.text(c))}
	case "number", "unary_expression":
		return &syntax.Literal{Span: span, Kind: syntax.LitNumber, Text: l.text(c)}
	case "true":
		return &syntax.Literal{Span: span, Kind: syntax.LitTrue, Text: "true"}
	case "false":
		return &syntax.Literal{Span: span, Kind: syntax.LitFalse, Text: "false"}
	case "null":
		return &syntax.Literal{Span: span, Kind: syntax.LitNull, Text: "null"}
	case "undefined":
		return &syntax.Keyword{Span: span, Name: "undefined"}
	}
	return &syntax.Unsupported{Span: span, What: strings.ReplaceAll(c.Type(), "_", " ") + " literal type"}
}

func (l *lowerer) tupleElement(n *sitter.Node) syntax.TypeNode {
	switch n.Type() {
	case "required_parameter", "optional_parameter", "tuple_parameter", "optional_tuple_parameter":
	default:
		return l.typ(n)
	}
	m := &syntax.NamedTupleMember{
		Span:     l.span(n),
		Optional: n.Type() == "optional_parameter" || n.Type() == "optional_tuple_parameter",
	}
	name := field(n, "name", "pattern")
	if name != nil && name.Type() == "rest_pattern" {
		m.Rest = true
		if ids := namedChildren(name); len(ids) > 0 {
			name = ids[0]
		}
	}
	m.Name = l.text(name)
	m.Type = l.typ(n.ChildByFieldName("type"))
	if m.Type == nil {
		m.Type = &syntax.Unsupported{Span: m.Span, What: "tuple member without a type"}
	}
	return m
}

// mapped returns the mapped type written as the object type n, or nil if n
// is an ordinary object type.
func (l *lowerer) mapped(n *sitter.Node) syntax.TypeNode {
	kids := namedChildren(n)
	if len(kids) != 1 || kids[0].Type() != "index_signature" {
		return nil
	}
	sig := kids[0]
	clause := childOfType(sig, "mapped_type_clause")
	if clause == nil {
		return nil
	}

	parts := namedChildren(clause)
	name := field(clause, "name")
	if name == nil && len(parts) > 0 {
		name = parts[0]
	}
	constraint := field(clause, "type")
	if constraint == nil && len(parts) > 1 {
		constraint = parts[1]
	}

	m := &syntax.Mapped{
		Span: l.span(n),
		Param: &syntax.TypeParamDecl{
			Span:       l.span(clause),
			Name:       l.text(name),
			Constraint: l.typ(constraint),
		},
		Remapped: field(clause, "alias") != nil || hasToken(clause, "as"),
	}
	ann := field(sig, "type")
	if ann == nil {
		ann = childOfType(sig, "type_annotation", "opting_type_annotation", "omitting_type_annotation", "adding_type_annotation")
	}
	if ann != nil {
		switch ann.Type() {
		case "opting_type_annotation", "adding_type_annotation":
			m.Optional = syntax.ModifierAdd
		case "omitting_type_annotation":
			m.Optional = syntax.ModifierRemove
		}
		m.Value = l.typ(ann)
	}
	return m
}

// members lowers the members of an object type or interface body.
func (l *lowerer) members(body *sitter.Node) []syntax.Member {
	var out []syntax.Member
	for _, c := range namedChildren(body) {
		span := l.span(c)
		switch c.Type() {
		case "property_signature":
			name := c.ChildByFieldName("name")
			p := &syntax.PropertySignature{
				Span:     span,
				Name:     l.propertyName(name),
				NameKind: propertyNameKind(name),
				Optional: hasToken(c, "?"),
				Readonly: hasToken(c, "readonly"),
			}
			if t := c.ChildByFieldName("type"); t != nil {
				p.Type = l.typ(t)
			}
			out = append(out, p)

		case "index_signature":
			if childOfType(c, "mapped_type_clause") != nil {
				out = append(out, &syntax.OtherMember{Span: span, What: "mapped type"})
				continue
			}
			sig := &syntax.IndexSignature{
				Span:      span,
				ParamName: l.text(c.ChildByFieldName("name")),
				Key:       l.typ(c.ChildByFieldName("index_type")),
				Value:     l.typ(c.ChildByFieldName("type")),
			}
			if sig.Key == nil {
				sig.Key = &syntax.Unsupported{Span: span, What: "index signature without key type"}
			}
			out = append(out, sig)

		case "method_signature":
			out = append(out, &syntax.OtherMember{Span: span, What: "method signature"})
		case "call_signature":
			out = append(out, &syntax.OtherMember{Span: span, What: "call signature"})
		case "construct_signature":
			out = append(out, &syntax.OtherMember{Span: span, What: "construct signature"})
		default:
			out = append(out, &syntax.OtherMember{Span: span, What: strings.ReplaceAll(c.Type(), "_", " ")})
		}
	}
	return out
}

func (l *lowerer) propertyName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "string" {
		return unquote(l.text(n))
	}
	return l.text(n)
}

func propertyNameKind(n *sitter.Node) syntax.PropertyNameKind {
	if n == nil {
		return syntax.NameComputed
	}
	switch n.Type() {
	case "string":
		return syntax.NameString
	case "number":
		return syntax.NameNumber
	case "computed_property_name":
		return syntax.NameComputed
	}
	return syntax.NameIdentifier
}
