// Package oracle defines what the descriptor compiler needs to know about a
// program beyond the syntax in front of it: which declarations a name refers
// to, the nominal type a symbol declares, and where a declaration lives.
package oracle

import (
	"strings"

	"github.com/broady/typedesc/syntax"
)

// Symbol is a named entity of the program.
type Symbol struct {
	Name  string
	Decls []syntax.Decl
	// Library is set for symbols that come from the built-in library or
	// from third-party modules. The compiler never expands their declarations.
	Library bool
}

// Oracle answers name resolution questions. Implementations must be safe for
// concurrent use.
type Oracle interface {
	// SymbolOf returns the symbol a reference node (TypeReference,
	// ExpressionWithTypeArguments or TypeQuery) resolves to, or nil.
	SymbolOf(node syntax.Node) *Symbol

	// DeclarationsOf returns the declarations of sym.
	DeclarationsOf(sym *Symbol) []syntax.Decl

	// DeclaredTypeOf returns the nominal type declared by sym.
	DeclaredTypeOf(sym *Symbol) Type

	// ExtendsMarker reports whether t is, or nominally extends, the type
	// named marker.
	ExtendsMarker(t Type, marker string) bool
}

// Path is the canonical location of a declaration.
type Path struct {
	// Module is the canonical module path, such as "/api/user".
	Module string
	// Identifiers is the path of names from the module scope to the
	// declaration, such as ["Api", "User"] for namespace Api { interface User }.
	Identifiers []string
}

// String returns "module:Identifier.Path".
func (p Path) String() string {
	return p.Module + ":" + strings.Join(p.Identifiers, ".")
}

// Locator maps declarations to canonical paths.
type Locator interface {
	CanonicalPathOf(decl syntax.Decl) (Path, error)
}
