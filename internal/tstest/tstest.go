// Package tstest provides helpers for tests that need a loaded TypeScript
// program. Sources are written as txtar archives, one section per file:
//
//	-- api/user.ts --
//	export interface User { id: number }
//	-- main.ts --
//	import {User} from "./api/user"
package tstest

import (
	"context"
	"testing"
	"testing/fstest"

	"golang.org/x/tools/txtar"

	"github.com/broady/typedesc/project"
	"github.com/broady/typedesc/syntax"
)

// FS returns the files of a txtar archive as a file system.
func FS(archive string) fstest.MapFS {
	return ArchiveFS(txtar.Parse([]byte(archive)))
}

// ArchiveFS returns the files of ar as a file system.
func ArchiveFS(ar *txtar.Archive) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, f := range ar.Files {
		fsys[f.Name] = &fstest.MapFile{Data: f.Data}
	}
	return fsys
}

// Section returns the content of the archive file called name, or "".
func Section(ar *txtar.Archive, name string) string {
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	return ""
}

// Load loads the files of a txtar archive as a program.
func Load(t testing.TB, archive string) *project.Program {
	t.Helper()
	p, err := project.Load(context.Background(), FS(archive))
	if err != nil {
		t.Fatalf("project.Load() error = %v", err)
	}
	return p
}

// Decl returns the declaration named name (dotted for namespaces) in the
// module loaded from file.
func Decl(t testing.TB, p *project.Program, file, name string) syntax.Decl {
	t.Helper()
	m, ok := p.ModuleOfFile(file)
	if !ok {
		t.Fatalf("module %s not loaded", file)
	}
	d, err := p.Lookup(m, name)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", name, err)
	}
	return d
}

// AliasType returns the aliased type of the type alias name in file.
func AliasType(t testing.TB, p *project.Program, file, name string) syntax.TypeNode {
	t.Helper()
	a, ok := Decl(t, p, file, name).(*syntax.TypeAliasDecl)
	if !ok {
		t.Fatalf("%s is not a type alias", name)
	}
	return a.Type
}
