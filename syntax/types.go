package syntax

// LiteralKind is the kind of a literal type.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitTrue
	LitFalse
	LitNull
)

// Paren is a parenthesized type: (T).
type Paren struct {
	Span Span
	Type TypeNode
}

// Literal is a literal type.
type Literal struct {
	Span Span
	Kind LiteralKind
	// Text is the unescaped value of a string literal or the source text of a
	// number literal, including a leading minus sign.
	Text string
}

// Keyword is a predefined type such as string, number, boolean or any.
type Keyword struct {
	Span Span
	Name string
}

// Union is T1 | T2 | ... with nested binary unions flattened.
type Union struct {
	Span  Span
	Types []TypeNode
}

// Intersection is T1 & T2 & ... with nested binary intersections flattened.
type Intersection struct {
	Span  Span
	Types []TypeNode
}

// ArrayOf is T[].
type ArrayOf struct {
	Span    Span
	Element TypeNode
}

// Readonly is readonly T.
type Readonly struct {
	Span Span
	Type TypeNode
}

// Tuple is [A, B?, ...C[]]. Elements are plain type nodes, NamedTupleMember,
// OptionalType or RestType.
type Tuple struct {
	Span     Span
	Elements []TypeNode
}

// NamedTupleMember is a labelled tuple position: name?: T or ...name: T.
type NamedTupleMember struct {
	Span     Span
	Name     string
	Type     TypeNode
	Optional bool
	Rest     bool
}

// OptionalType is an unlabelled optional tuple position: T?.
type OptionalType struct {
	Span Span
	Type TypeNode
}

// RestType is an unlabelled rest tuple position: ...T.
type RestType struct {
	Span Span
	Type TypeNode
}

// ObjectShape is an object type literal: { a: T; [k: string]: V }.
type ObjectShape struct {
	Span    Span
	Members []Member
}

// TypeReference is a possibly qualified name with optional type arguments:
// ns.Name<A, B>.
type TypeReference struct {
	Span     Span
	Name     []string
	TypeArgs []TypeNode
}

// ExpressionWithTypeArguments is an entry of an extends or implements clause.
type ExpressionWithTypeArguments struct {
	Span     Span
	Expr     []string
	TypeArgs []TypeNode
}

// IndexedAccess is Object[Index].
type IndexedAccess struct {
	Span   Span
	Object TypeNode
	Index  TypeNode
}

// MappedModifier is the optional modifier of a mapped type.
type MappedModifier int

const (
	ModifierNone   MappedModifier = iota
	ModifierAdd                   // ? or +?
	ModifierRemove                // -?
)

// Mapped is { [K in C]?: V }. Param holds K with C as its constraint.
type Mapped struct {
	Span     Span
	Param    *TypeParamDecl
	Value    TypeNode
	Optional MappedModifier
	// Remapped is set when the key is remapped with an "as" clause.
	Remapped bool
}

// KeyOf is keyof T.
type KeyOf struct {
	Span Span
	Type TypeNode
}

// TypeQuery is typeof a.b.c.
type TypeQuery struct {
	Span Span
	Expr []string
}

// Unsupported is type syntax the front end recognizes but does not model,
// such as function, conditional or template literal types.
type Unsupported struct {
	Span Span
	What string
}

func (n *Paren) Pos() Span                       { return n.Span }
func (n *Literal) Pos() Span                     { return n.Span }
func (n *Keyword) Pos() Span                     { return n.Span }
func (n *Union) Pos() Span                       { return n.Span }
func (n *Intersection) Pos() Span                { return n.Span }
func (n *ArrayOf) Pos() Span                     { return n.Span }
func (n *Readonly) Pos() Span                    { return n.Span }
func (n *Tuple) Pos() Span                       { return n.Span }
func (n *NamedTupleMember) Pos() Span            { return n.Span }
func (n *OptionalType) Pos() Span                { return n.Span }
func (n *RestType) Pos() Span                    { return n.Span }
func (n *ObjectShape) Pos() Span                 { return n.Span }
func (n *TypeReference) Pos() Span               { return n.Span }
func (n *ExpressionWithTypeArguments) Pos() Span { return n.Span }
func (n *IndexedAccess) Pos() Span               { return n.Span }
func (n *Mapped) Pos() Span                      { return n.Span }
func (n *KeyOf) Pos() Span                       { return n.Span }
func (n *TypeQuery) Pos() Span                   { return n.Span }
func (n *Unsupported) Pos() Span                 { return n.Span }

func (*Paren) typeNode()                       {}
func (*Literal) typeNode()                     {}
func (*Keyword) typeNode()                     {}
func (*Union) typeNode()                       {}
func (*Intersection) typeNode()                {}
func (*ArrayOf) typeNode()                     {}
func (*Readonly) typeNode()                    {}
func (*Tuple) typeNode()                       {}
func (*NamedTupleMember) typeNode()            {}
func (*OptionalType) typeNode()                {}
func (*RestType) typeNode()                    {}
func (*ObjectShape) typeNode()                 {}
func (*TypeReference) typeNode()               {}
func (*ExpressionWithTypeArguments) typeNode() {}
func (*IndexedAccess) typeNode()               {}
func (*Mapped) typeNode()                      {}
func (*KeyOf) typeNode()                       {}
func (*TypeQuery) typeNode()                   {}
func (*Unsupported) typeNode()                 {}
