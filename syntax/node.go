// Package syntax is the tree of TypeScript type expressions and declarations
// that descriptors are compiled from.
//
// The set of variants is closed: TypeNode, Member and Decl are sealed
// interfaces and consumers switch over the concrete types. Syntax the front
// end does not model is kept as an Unsupported or OtherMember node so that it
// can be reported with its position instead of being dropped.
package syntax

import "fmt"

// Span locates a node in its source file.
type Span struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
	// Text is the source text of the node.
	Text string
}

// String returns "file:line:column".
func (s Span) String() string {
	if s.File == "" && s.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Node is implemented by every syntax node.
type Node interface {
	// Pos returns the location of the node.
	Pos() Span
}

// TypeNode is a type expression.
type TypeNode interface {
	Node
	typeNode()
}

// Member is an entry of an object type literal or interface body.
type Member interface {
	Node
	member()
}

// Decl is a named declaration.
type Decl interface {
	Node
	// DeclName returns the declared name.
	DeclName() string
	decl()
}
