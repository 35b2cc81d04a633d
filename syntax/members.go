package syntax

// PropertyNameKind is how a property name is written.
type PropertyNameKind int

const (
	NameIdentifier PropertyNameKind = iota
	NameString
	NameNumber
	NameComputed
)

// IndexSignature is [name: Key]: Value.
type IndexSignature struct {
	Span      Span
	ParamName string
	Key       TypeNode
	Value     TypeNode
}

// PropertySignature is name?: Type. Type is nil when the annotation is omitted.
// Property signatures are declarations so that typeof queries can resolve to
// them.
type PropertySignature struct {
	Span     Span
	Name     string
	NameKind PropertyNameKind
	Optional bool
	Readonly bool
	Type     TypeNode
}

// OtherMember is a member that is not a property or index signature, such as
// a method, call or construct signature.
type OtherMember struct {
	Span Span
	What string
}

func (n *IndexSignature) Pos() Span    { return n.Span }
func (n *PropertySignature) Pos() Span { return n.Span }
func (n *OtherMember) Pos() Span       { return n.Span }

func (*IndexSignature) member()    {}
func (*PropertySignature) member() {}
func (*OtherMember) member()       {}
