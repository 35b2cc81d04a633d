package describe

import (
	"log/slog"

	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/syntax"
)

// external reports whether sym names a marker-tagged type and, if so,
// returns its external descriptor.
func (d *describer) external(ref syntax.Node, sym *oracle.Symbol) (desc.Descriptor, bool, error) {
	if len(d.markers) == 0 {
		return nil, false, nil
	}
	t := d.oracle.DeclaredTypeOf(sym)
	matched := ""
	for _, m := range d.markers {
		if d.oracle.ExtendsMarker(t, m) {
			matched = m
			break
		}
	}
	if matched == "" {
		return nil, false, nil
	}

	decls := d.oracle.DeclarationsOf(sym)
	if len(decls) != 1 {
		return nil, false, errorf(ref, CodeAmbiguousOrInvalidExternalDeclaration,
			"external type %s must have exactly one declaration, found %d", sym.Name, len(decls))
	}
	switch decls[0].(type) {
	case *syntax.ClassDecl, *syntax.InterfaceDecl, *syntax.TypeAliasDecl:
	default:
		return nil, false, errorf(ref, CodeAmbiguousOrInvalidExternalDeclaration,
			"external type %s must be declared by a class, interface or type alias", sym.Name)
	}

	path, err := d.locator.CanonicalPathOf(decls[0])
	if err != nil {
		return nil, false, errorf(ref, CodeAmbiguousOrInvalidExternalDeclaration,
			"cannot locate external type %s: %v", sym.Name, err)
	}
	name := path.String()
	d.logger.Debug("external type",
		slog.String("name", name),
		slog.String("marker", matched))
	return &desc.External{Name: name}, true, nil
}
