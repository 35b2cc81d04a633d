package project

import (
	"log/slog"

	"github.com/broady/typedesc/syntax"
)

// meaning is the set of declaration spaces a name lives in.
type meaning uint8

const (
	meaningType meaning = 1 << iota
	meaningValue
	meaningNamespace
)

func meaningOf(d syntax.Decl) meaning {
	switch d.(type) {
	case *syntax.InterfaceDecl, *syntax.TypeAliasDecl, *syntax.TypeParamDecl:
		return meaningType
	case *syntax.ClassDecl, *syntax.EnumDecl:
		return meaningType | meaningValue
	case *syntax.NamespaceDecl:
		return meaningNamespace | meaningValue
	case *syntax.VariableDecl, *syntax.FunctionDecl, *syntax.ParameterDecl, *syntax.PropertySignature:
		return meaningValue
	}
	return 0
}

// alias is a name bound by an import or a re-export.
type alias struct {
	target *Module // nil when the module could not be resolved
	name   string  // exported name, or "*" for the module namespace object
}

type binding struct {
	decls   []syntax.Decl
	aliases []alias
}

type scope struct {
	parent *scope
	names  map[string]*binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]*binding)}
}

func (s *scope) binding(name string) *binding {
	b := s.names[name]
	if b == nil {
		b = &binding{}
		s.names[name] = b
	}
	return b
}

func (s *scope) declare(d syntax.Decl) {
	b := s.binding(d.DeclName())
	b.decls = append(b.decls, d)
}

// resolved is what a name stands for in some meaning: declarations, and for
// namespace lookups also whole modules (import * as ns).
type resolved struct {
	decls   []syntax.Decl
	modules []*Module
}

func (r resolved) empty() bool {
	return len(r.decls) == 0 && len(r.modules) == 0
}

func (r *resolved) add(o resolved) {
	r.decls = append(r.decls, o.decls...)
	r.modules = append(r.modules, o.modules...)
}

// declareModule builds the module scope: top-level declarations and import
// bindings, with the global scope as parent. Declarations are registered
// with their canonical identifiers.
func (p *Program) declareModule(m *Module) {
	m.scope = newScope(p.global)
	for _, d := range m.File.Decls {
		m.scope.declare(d)
	}
	for _, imp := range m.File.Imports {
		target := p.resolveSpecifier(m, imp.Module)
		if target == nil {
			p.logger.Debug("unresolved import",
				slog.String("module", m.Path),
				slog.String("specifier", imp.Module))
		}
		if imp.Default != "" {
			b := m.scope.binding(imp.Default)
			b.aliases = append(b.aliases, alias{target: target, name: "default"})
		}
		if imp.Namespace != "" {
			b := m.scope.binding(imp.Namespace)
			b.aliases = append(b.aliases, alias{target: target, name: "*"})
		}
		for _, n := range imp.Names {
			b := m.scope.binding(n.Alias)
			b.aliases = append(b.aliases, alias{target: target, name: n.Name})
		}
	}
	m.File.Walk(func(d syntax.Decl, namespaces []string) {
		ids := make([]string, 0, len(namespaces)+1)
		ids = append(ids, namespaces...)
		p.decls[d] = declInfo{module: m, identifiers: append(ids, d.DeclName())}
	})
}

// buildExports records what m exports under each name.
func (p *Program) buildExports(m *Module) {
	m.exports = make(map[string]*binding)
	export := func(name string) *binding {
		b := m.exports[name]
		if b == nil {
			b = &binding{}
			m.exports[name] = b
		}
		return b
	}
	for _, d := range m.File.Decls {
		if syntax.IsExported(d) {
			b := export(d.DeclName())
			b.decls = append(b.decls, d)
		}
	}
	for _, e := range m.File.Exports {
		if e.Module == "" {
			for _, n := range e.Names {
				local := m.scope.names[n.Name]
				if local == nil {
					continue
				}
				b := export(n.Alias)
				b.decls = append(b.decls, local.decls...)
				b.aliases = append(b.aliases, local.aliases...)
			}
			continue
		}
		target := p.resolveSpecifier(m, e.Module)
		if e.All {
			if target != nil {
				m.stars = append(m.stars, target)
			}
			continue
		}
		for _, n := range e.Names {
			b := export(n.Alias)
			b.aliases = append(b.aliases, alias{target: target, name: n.Name})
		}
	}
}

// lookup resolves name in s and its parents. The innermost scope that has
// the name in meaning m wins.
func (p *Program) lookup(s *scope, name string, m meaning) resolved {
	seen := make(map[exportKey]bool)
	for cur := s; cur != nil; cur = cur.parent {
		if b := cur.names[name]; b != nil {
			if r := p.resolveBinding(b, m, seen); !r.empty() {
				return r
			}
		}
	}
	return resolved{}
}

type exportKey struct {
	module *Module
	name   string
}

func (p *Program) resolveBinding(b *binding, m meaning, seen map[exportKey]bool) resolved {
	var r resolved
	for _, d := range b.decls {
		if meaningOf(d)&m != 0 {
			r.decls = append(r.decls, d)
		}
	}
	for _, a := range b.aliases {
		if a.target == nil {
			continue
		}
		if a.name == "*" {
			if m&meaningNamespace != 0 {
				r.modules = append(r.modules, a.target)
			}
			continue
		}
		r.add(p.exported(a.target, a.name, m, seen))
	}
	return r
}

// exported resolves what module mod exports as name, following re-exports.
func (p *Program) exported(mod *Module, name string, m meaning, seen map[exportKey]bool) resolved {
	key := exportKey{mod, name}
	if seen[key] {
		return resolved{}
	}
	seen[key] = true

	if b := mod.exports[name]; b != nil {
		if r := p.resolveBinding(b, m, seen); !r.empty() {
			return r
		}
	}
	if name == "default" {
		return resolved{}
	}
	for _, star := range mod.stars {
		if r := p.exported(star, name, m, seen); !r.empty() {
			return r
		}
	}
	return resolved{}
}

// member resolves name inside what r stands for: exported members of
// namespaces and exports of modules.
func (p *Program) member(r resolved, name string, m meaning) resolved {
	var out resolved
	for _, d := range r.decls {
		ns, ok := d.(*syntax.NamespaceDecl)
		if !ok {
			continue
		}
		for _, inner := range ns.Decls {
			if inner.DeclName() == name && syntax.IsExported(inner) && meaningOf(inner)&m != 0 {
				out.decls = append(out.decls, inner)
			}
		}
	}
	for _, mod := range r.modules {
		out.add(p.exported(mod, name, m, make(map[exportKey]bool)))
	}
	return out
}

// lookupQualified resolves a dotted name. All but the last part are
// namespaces.
func (p *Program) lookupQualified(s *scope, names []string, m meaning) resolved {
	if len(names) == 1 {
		return p.lookup(s, names[0], m)
	}
	r := p.lookup(s, names[0], meaningNamespace)
	for _, name := range names[1 : len(names)-1] {
		r = p.member(r, name, meaningNamespace)
	}
	return p.member(r, names[len(names)-1], m)
}
