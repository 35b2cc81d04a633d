package syntax

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Span       Span
	Name       string
	Exported   bool
	TypeParams []*TypeParamDecl
	Extends    []*ExpressionWithTypeArguments
	Members    []Member
}

// TypeAliasDecl is type Name<P> = Type.
type TypeAliasDecl struct {
	Span       Span
	Name       string
	Exported   bool
	TypeParams []*TypeParamDecl
	Type       TypeNode
}

// TypeParamDecl declares a type parameter of a generic declaration or the key
// parameter of a mapped type. Constraint and Default may be nil.
type TypeParamDecl struct {
	Span       Span
	Name       string
	Constraint TypeNode
	Default    TypeNode
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Span       Span
	Name       string
	Exported   bool
	Abstract   bool
	TypeParams []*TypeParamDecl
	Extends    *ExpressionWithTypeArguments
	Implements []*ExpressionWithTypeArguments
	Methods    []*MethodDecl
}

// MethodDecl is a method of a class.
type MethodDecl struct {
	Span     Span
	Name     string
	Static   bool
	Abstract bool
	Params   []*ParameterDecl
}

// ParameterDecl is a parameter of a method or function.
type ParameterDecl struct {
	Span Span
	Name string
	// Destructured is set for object or array binding patterns; Name is then
	// the pattern's source text.
	Destructured bool
	Optional     bool
	Rest         bool
	// HasInitializer is set when the parameter has a default value.
	HasInitializer bool
	Type           TypeNode
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Span     Span
	Name     string
	Exported bool
	Const    bool
	Members  []string
}

// VariableDecl is one declarator of a var, let or const statement.
type VariableDecl struct {
	Span     Span
	Name     string
	Exported bool
	Type     TypeNode
}

// FunctionDecl is a function declaration. Only its name is modelled.
type FunctionDecl struct {
	Span     Span
	Name     string
	Exported bool
}

// NamespaceDecl is a namespace or internal module.
type NamespaceDecl struct {
	Span     Span
	Name     string
	Exported bool
	Decls    []Decl
}

func (n *InterfaceDecl) Pos() Span { return n.Span }
func (n *TypeAliasDecl) Pos() Span { return n.Span }
func (n *TypeParamDecl) Pos() Span { return n.Span }
func (n *ClassDecl) Pos() Span     { return n.Span }
func (n *MethodDecl) Pos() Span    { return n.Span }
func (n *ParameterDecl) Pos() Span { return n.Span }
func (n *EnumDecl) Pos() Span      { return n.Span }
func (n *VariableDecl) Pos() Span  { return n.Span }
func (n *FunctionDecl) Pos() Span  { return n.Span }
func (n *NamespaceDecl) Pos() Span { return n.Span }

func (n *InterfaceDecl) DeclName() string { return n.Name }
func (n *TypeAliasDecl) DeclName() string { return n.Name }
func (n *TypeParamDecl) DeclName() string { return n.Name }
func (n *ClassDecl) DeclName() string     { return n.Name }
func (n *MethodDecl) DeclName() string    { return n.Name }
func (n *ParameterDecl) DeclName() string { return n.Name }
func (n *EnumDecl) DeclName() string      { return n.Name }
func (n *VariableDecl) DeclName() string  { return n.Name }
func (n *FunctionDecl) DeclName() string  { return n.Name }
func (n *NamespaceDecl) DeclName() string { return n.Name }

// DeclName returns the property name.
func (n *PropertySignature) DeclName() string { return n.Name }

func (*InterfaceDecl) decl()     {}
func (*TypeAliasDecl) decl()     {}
func (*TypeParamDecl) decl()     {}
func (*ClassDecl) decl()         {}
func (*MethodDecl) decl()        {}
func (*ParameterDecl) decl()     {}
func (*EnumDecl) decl()          {}
func (*VariableDecl) decl()      {}
func (*FunctionDecl) decl()      {}
func (*NamespaceDecl) decl()     {}
func (*PropertySignature) decl() {}

// IsExported reports whether a top-level or namespace-level declaration is
// exported.
func IsExported(d Decl) bool {
	switch d := d.(type) {
	case *InterfaceDecl:
		return d.Exported
	case *TypeAliasDecl:
		return d.Exported
	case *ClassDecl:
		return d.Exported
	case *EnumDecl:
		return d.Exported
	case *VariableDecl:
		return d.Exported
	case *FunctionDecl:
		return d.Exported
	case *NamespaceDecl:
		return d.Exported
	}
	return false
}
