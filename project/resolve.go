package project

import (
	"path"
	"strings"
)

var sourceExtensions = []string{".d.ts", ".ts", ".tsx", ".mts", ".cts"}

func isSourceFile(name string) bool {
	return extension(name) != ""
}

func extension(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

func stripExtension(name string) string {
	return name[:len(name)-len(extension(name))]
}

func isLibraryPath(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, "node_modules/") || strings.Contains(name, "/node_modules/")
}

// canonicalPath returns the canonical module path of a root-relative file:
// "/dir/file" for project files and "package/dir/file" for files under
// node_modules, scoped packages included.
func canonicalPath(name string) string {
	name = strings.TrimPrefix(path.Clean(name), "/")
	parts := strings.Split(name, "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] == "node_modules" {
			return stripExtension(strings.Join(parts[i+1:], "/"))
		}
	}
	return "/" + stripExtension(name)
}

func isBareSpecifier(spec string) bool {
	return !strings.HasPrefix(spec, ".") && !strings.HasPrefix(spec, "/")
}

// candidates lists the files a module specifier without extension may refer to.
func candidates(base string) []string {
	if ext := path.Ext(base); ext == ".js" || ext == ".mjs" || ext == ".cjs" {
		base = strings.TrimSuffix(base, ext)
	}
	if isSourceFile(base) {
		return []string{base}
	}
	return []string{
		base + ".ts",
		base + ".tsx",
		base + ".d.ts",
		base + "/index.ts",
		base + "/index.tsx",
		base + "/index.d.ts",
	}
}

// resolveSpecifier returns the module an import in from refers to, or nil.
// Relative specifiers resolve against the importing file, absolute ones
// against the root. Bare specifiers resolve against the root first, the way
// a baseUrl of "." does, then against the enclosing node_modules directories.
func (p *Program) resolveSpecifier(from *Module, spec string) *Module {
	var bases []string
	switch {
	case strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == "..":
		bases = append(bases, path.Join(path.Dir(from.File.Path), spec))
	case strings.HasPrefix(spec, "/"):
		bases = append(bases, strings.TrimPrefix(path.Clean(spec), "/"))
	default:
		bases = append(bases, path.Clean(spec))
		dir := path.Dir(from.File.Path)
		for {
			bases = append(bases, path.Join(dir, "node_modules", spec))
			if dir == "." || dir == "/" {
				break
			}
			dir = path.Dir(dir)
		}
	}
	for _, base := range bases {
		for _, c := range candidates(base) {
			if m, ok := p.byFile[c]; ok {
				return m
			}
		}
	}
	return nil
}
