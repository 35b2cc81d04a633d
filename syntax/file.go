package syntax

// ImportName is one entry of a named import or export list: name as alias.
// Alias equals Name when no alias is written.
type ImportName struct {
	Name  string
	Alias string
}

// Import is an import declaration.
type Import struct {
	Span Span
	// Module is the module specifier as written.
	Module string
	// Default is the default import binding, if any.
	Default string
	// Namespace is the binding of "* as ns", if any.
	Namespace string
	Names     []ImportName
}

// Export is an export list: export { a as b } or export ... from "module".
type Export struct {
	Span Span
	// Module is empty for a local export list.
	Module string
	Names  []ImportName
	// All is set for export * from "module".
	All bool
}

// File is a parsed source file.
type File struct {
	// Path is the slash-separated path of the file relative to the project root.
	Path    string
	Decls   []Decl
	Imports []*Import
	Exports []*Export
}

// Walk calls fn for every declaration of the file, descending into
// namespaces. The namespace path of each declaration is passed along.
func (f *File) Walk(fn func(d Decl, namespaces []string)) {
	walkDecls(f.Decls, nil, fn)
}

func walkDecls(decls []Decl, path []string, fn func(Decl, []string)) {
	for _, d := range decls {
		fn(d, path)
		if ns, ok := d.(*NamespaceDecl); ok {
			walkDecls(ns.Decls, append(path[:len(path):len(path)], ns.Name), fn)
		}
	}
}
