// Package project loads a tree of TypeScript files into an immutable program
// and answers the name resolution questions of the descriptor compiler.
//
// Resolution is syntactic: imports, export lists, namespaces and lexical
// scopes are followed, but nothing is type checked. A loaded Program is never
// modified and is safe for concurrent use.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/broady/typedesc/internal/tsparse"
	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/syntax"
)

// Module is a loaded source file.
type Module struct {
	// Path is the canonical module path: "/" plus the root-relative file
	// path without extension, or the package path for files under
	// node_modules.
	Path string
	File *syntax.File
	// Library is set for modules loaded from node_modules and for the
	// built-in library.
	Library bool

	scope   *scope
	exports map[string]*binding
	stars   []*Module
}

// Program is a set of loaded modules with all references bound.
type Program struct {
	logger  *slog.Logger
	modules map[string]*Module
	byFile  map[string]*Module
	global  *scope
	refs    map[syntax.Node]*oracle.Symbol
	decls   map[syntax.Decl]declInfo
}

type declInfo struct {
	module      *Module
	identifiers []string
}

var (
	_ oracle.Oracle  = (*Program)(nil)
	_ oracle.Locator = (*Program)(nil)
)

// Option configures loading.
type Option func(*loader)

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithConcurrency limits the number of files parsed at once.
// The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(l *loader) {
		l.concurrency = n
	}
}

type loader struct {
	fsys        fs.FS
	logger      *slog.Logger
	concurrency int
	prog        *Program
}

// LoadDir loads every TypeScript file under dir.
func LoadDir(ctx context.Context, dir string, opts ...Option) (*Program, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load %s: not a directory", dir)
	}
	return Load(ctx, os.DirFS(dir), opts...)
}

// Load loads every TypeScript file of fsys outside node_modules. Modules under
// node_modules are loaded when imported.
func Load(ctx context.Context, fsys fs.FS, opts ...Option) (*Program, error) {
	l := &loader{
		fsys:        fsys,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}
	l.prog = &Program{
		logger:  l.logger,
		modules: make(map[string]*Module),
		byFile:  make(map[string]*Module),
		refs:    make(map[syntax.Node]*oracle.Symbol),
		decls:   make(map[syntax.Decl]declInfo),
	}

	files, err := l.sourceFiles()
	if err != nil {
		return nil, err
	}
	if err := l.parse(ctx, files, false); err != nil {
		return nil, err
	}
	if err := l.loadImportedLibraries(ctx); err != nil {
		return nil, err
	}

	p := l.prog
	p.global = newGlobalScope(p)
	for _, m := range p.sortedModules() {
		p.declareModule(m)
	}
	for _, m := range p.sortedModules() {
		p.buildExports(m)
	}
	b := &binder{p: p}
	for _, m := range p.sortedModules() {
		b.module(m)
	}
	b.resolveQueries()

	l.logger.Debug("loaded program",
		slog.Int("modules", len(p.modules)),
		slog.Int("references", len(p.refs)))
	return p, nil
}

// sourceFiles lists the TypeScript files of the tree, skipping node_modules
// and hidden directories.
func (l *loader) sourceFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if isSourceFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list source files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (l *loader) parse(ctx context.Context, files []string, library bool) error {
	parsed := make([]*syntax.File, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, name := range files {
		g.Go(func() error {
			src, err := fs.ReadFile(l.fsys, name)
			if err != nil {
				return err
			}
			f, err := tsparse.Parse(ctx, name, src)
			if err != nil {
				return err
			}
			parsed[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range parsed {
		m := &Module{
			Path:    canonicalPath(f.Path),
			File:    f,
			Library: library || isLibraryPath(f.Path),
		}
		if prev, ok := l.prog.modules[m.Path]; ok {
			// a.ts next to a.d.ts: the implementation wins.
			if strings.HasSuffix(f.Path, ".d.ts") {
				l.prog.byFile[f.Path] = prev
				continue
			}
			l.prog.byFile[prev.File.Path] = m
		}
		l.prog.modules[m.Path] = m
		l.prog.byFile[f.Path] = m
	}
	return nil
}

// loadImportedLibraries loads node_modules files reachable through imports
// until no new file is found.
func (l *loader) loadImportedLibraries(ctx context.Context) error {
	done := make(map[string]bool)
	for {
		var pending []string
		for _, m := range l.prog.sortedModules() {
			for _, spec := range moduleSpecifiers(m.File) {
				if l.prog.resolveSpecifier(m, spec) != nil || !isBareSpecifier(spec) {
					continue
				}
				if name := l.findLibraryFile(m, spec); name != "" && !done[name] {
					done[name] = true
					pending = append(pending, name)
				}
			}
		}
		if len(pending) == 0 {
			return nil
		}
		sort.Strings(pending)
		l.logger.Debug("loading library modules", slog.Int("files", len(pending)))
		if err := l.parse(ctx, pending, true); err != nil {
			return err
		}
	}
}

func (l *loader) findLibraryFile(from *Module, spec string) string {
	dir := path.Dir(from.File.Path)
	for {
		base := path.Join(dir, "node_modules", spec)
		for _, c := range candidates(base) {
			if _, err := fs.Stat(l.fsys, c); err == nil {
				return c
			} else if !errors.Is(err, fs.ErrNotExist) {
				l.logger.Debug("stat failed", slog.String("file", c), slog.Any("error", err))
			}
		}
		if dir == "." || dir == "/" {
			return ""
		}
		dir = path.Dir(dir)
	}
}

// Modules returns the loaded modules ordered by path, library modules
// included.
func (p *Program) Modules() []*Module {
	return p.sortedModules()
}

// Module returns the module with the given canonical path.
func (p *Program) Module(path string) (*Module, bool) {
	m, ok := p.modules[path]
	return m, ok
}

// ModuleOfFile returns the module loaded from the given root-relative file.
func (p *Program) ModuleOfFile(name string) (*Module, bool) {
	m, ok := p.byFile[strings.TrimPrefix(path.Clean(name), "/")]
	return m, ok
}

// Lookup returns the declaration named by a dotted path, such as "Api.User",
// in module m. Namespaces are searched whether or not they are exported.
func (p *Program) Lookup(m *Module, name string) (syntax.Decl, error) {
	want := strings.Split(name, ".")
	var found []syntax.Decl
	m.File.Walk(func(d syntax.Decl, namespaces []string) {
		if _, ok := d.(*syntax.NamespaceDecl); ok {
			return
		}
		if len(namespaces) != len(want)-1 || d.DeclName() != want[len(want)-1] {
			return
		}
		for i, ns := range namespaces {
			if want[i] != ns {
				return
			}
		}
		found = append(found, d)
	})
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s: no declaration named %s", m.Path, name)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("%s: %s has %d declarations", m.Path, name, len(found))
}

func (p *Program) sortedModules() []*Module {
	out := make([]*Module, 0, len(p.modules))
	for _, m := range p.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func moduleSpecifiers(f *syntax.File) []string {
	var out []string
	for _, imp := range f.Imports {
		out = append(out, imp.Module)
	}
	for _, exp := range f.Exports {
		if exp.Module != "" {
			out = append(out, exp.Module)
		}
	}
	return out
}
