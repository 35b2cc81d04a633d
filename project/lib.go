package project

import "github.com/broady/typedesc/syntax"

// libTypes are the generic global types of the standard library with their
// number of type parameters. They are declared as empty interfaces in a
// library module so that references to them resolve to library symbols.
var libTypes = map[string]int{
	"Array":            1,
	"ReadonlyArray":    1,
	"Record":           2,
	"Partial":          1,
	"Required":         1,
	"Readonly":         1,
	"Pick":             2,
	"Omit":             2,
	"Exclude":          2,
	"Extract":          2,
	"NonNullable":      1,
	"ReturnType":       1,
	"Parameters":       1,
	"Promise":          1,
	"PromiseLike":      1,
	"Map":              2,
	"ReadonlyMap":      2,
	"Set":              1,
	"ReadonlySet":      1,
	"WeakMap":          2,
	"WeakSet":          1,
	"Date":             0,
	"RegExp":           0,
	"Error":            0,
	"Function":         0,
	"Object":           0,
	"String":           0,
	"Number":           0,
	"Boolean":          0,
	"Symbol":           0,
	"ArrayBuffer":      0,
	"Uint8Array":       0,
	"Uppercase":        1,
	"Lowercase":        1,
	"Capitalize":       1,
	"Uncapitalize":     1,
	"InstanceType":     1,
	"Awaited":          1,
	"ThisType":         1,
	"IterableIterator": 1,
}

// libModulePath is the canonical path of the built-in library module.
const libModulePath = "lib"

func newGlobalScope(p *Program) *scope {
	f := &syntax.File{Path: "lib.d.ts"}
	for name, arity := range libTypes {
		d := &syntax.InterfaceDecl{
			Span: syntax.Span{File: f.Path},
			Name: name,
		}
		for i := 0; i < arity; i++ {
			d.TypeParams = append(d.TypeParams, &syntax.TypeParamDecl{
				Span: d.Span,
				Name: string(rune('T' + i)),
			})
		}
		f.Decls = append(f.Decls, d)
	}
	m := &Module{Path: libModulePath, File: f, Library: true}

	s := newScope(nil)
	for _, d := range f.Decls {
		s.declare(d)
		p.decls[d] = declInfo{module: m, identifiers: []string{d.DeclName()}}
	}
	return s
}
