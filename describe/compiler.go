// Package describe compiles TypeScript type syntax into Type Descriptors.
//
// Only explicitly written type syntax is interpreted. The compiler never
// infers a type from a value: typeof queries follow the annotation of the
// queried declaration, and references are expanded through the declarations
// the Oracle reports for them.
package describe

import (
	"log/slog"

	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/syntax"
)

// Compiler turns type syntax into descriptors.
//
// A Compiler holds only read-only collaborators and may be used from several
// goroutines at once. Every Describe or DescribeDeclaration call gets its own
// recursion guard.
type Compiler struct {
	oracle  oracle.Oracle
	locator oracle.Locator
	markers []string
	logger  *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithExternalMarkers sets the names of the marker types. A reference to a
// class, interface or alias that is, extends or implements one of them is
// described as an external type instead of being expanded.
func WithExternalMarkers(names ...string) Option {
	return func(c *Compiler) {
		c.markers = append(c.markers, names...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New returns a compiler that resolves names through o and locates external
// declarations through l.
func New(o oracle.Oracle, l oracle.Locator, opts ...Option) *Compiler {
	c := &Compiler{
		oracle:  o,
		locator: l,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Describe returns the descriptor of node with type parameters bound by subst.
// A nil subst is the empty substitution.
func (c *Compiler) Describe(node syntax.TypeNode, subst *Substitution) (desc.Descriptor, error) {
	return c.newDescriber().describe(node, subst)
}

// DescribeDeclaration returns the descriptor of an interface or type alias
// declaration used without type arguments. Parameters with defaults take
// their defaults; parameters without fail when referenced.
//
// Marker checks do not apply to decl itself, only to the types it refers to.
func (c *Compiler) DescribeDeclaration(decl syntax.Decl) (desc.Descriptor, error) {
	return c.newDescriber().resolveDeclaration(decl, decl, nil, nil)
}

func (c *Compiler) newDescriber() *describer {
	return &describer{
		Compiler: c,
		active:   make(map[syntax.Decl]bool),
	}
}

// describer is the state of one top-level call.
type describer struct {
	*Compiler

	// active holds the declarations being expanded on the current path.
	active map[syntax.Decl]bool
}

func (d *describer) describe(node syntax.TypeNode, subst *Substitution) (desc.Descriptor, error) {
	switch n := node.(type) {
	case *syntax.Paren:
		return d.describe(n.Type, subst)
	case *syntax.Literal:
		return describeLiteral(n)
	case *syntax.Keyword:
		return describeKeyword(n)
	case *syntax.Union:
		return d.describeUnion(n, subst)
	case *syntax.Intersection:
		return d.describeIntersection(n, subst)
	case *syntax.ArrayOf:
		el, err := d.describe(n.Element, subst)
		if err != nil {
			return nil, err
		}
		return desc.ArrayOf(el), nil
	case *syntax.Readonly:
		return d.describe(n.Type, subst)
	case *syntax.Tuple:
		return d.describeTuple(n, subst)
	case *syntax.ObjectShape:
		obj, err := d.describeMembers(n.Members, nil, subst)
		if err != nil {
			return nil, err
		}
		return obj, nil
	case *syntax.TypeReference:
		return d.describeReference(n, n.TypeArgs, subst)
	case *syntax.ExpressionWithTypeArguments:
		return d.describeReference(n, n.TypeArgs, subst)
	case *syntax.IndexedAccess:
		return d.describeIndexedAccess(n, subst)
	case *syntax.Mapped:
		return d.describeMapped(n, subst)
	case *syntax.KeyOf:
		return d.describeKeyOf(n, subst)
	case *syntax.TypeQuery:
		return d.describeTypeQuery(n)
	case *syntax.NamedTupleMember, *syntax.OptionalType, *syntax.RestType:
		return nil, unsupported(node, "optional and rest markers are only allowed inside a tuple type")
	case *syntax.Unsupported:
		return nil, unsupported(node, "%s is not supported", n.What)
	case nil:
		return nil, unsupported(nil, "missing type")
	}
	return nil, unsupported(node, "unknown type node %T", node)
}
