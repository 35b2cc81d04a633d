// Package typedesc generates TypeScript modules of type descriptors from
// TypeScript source.
//
// A Generator runs tasks over a loaded project. Each task collects the
// declarations that extend a marker type, describes them with the descriptor
// compiler and writes one module exporting a collection of descriptors.
//
// Example:
//
//	cfg, err := config.Load("typedesc.yaml")
//	...
//	gen, err := typedesc.FromConfig(cfg)
//	...
//	files, err := gen.WithLogger(logger).ToDir(ctx, "./src/generated")
package typedesc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/broady/typedesc/config"
	"github.com/broady/typedesc/emit"
	"github.com/broady/typedesc/project"
	"github.com/broady/typedesc/sink"
)

// Generator provides a fluent API for running generation tasks.
// Create with FromDir, FromProgram or FromConfig and configure with method
// chaining.
type Generator struct {
	root        string
	program     *project.Program
	tasks       []config.Task
	header      string
	headerSet   bool
	ignore      []*regexp.Regexp
	concurrency int
	logger      *slog.Logger
	emitter     emit.Emitter
}

// File is a generated module.
type File struct {
	Path    string
	Content []byte
	// Entries is the number of keys of the exported collection.
	Entries int
}

// FromDir creates a Generator for the TypeScript project rooted at dir.
// The project is loaded when the generator runs.
func FromDir(dir string) *Generator {
	return &Generator{root: dir}
}

// FromProgram creates a Generator for an already loaded program.
func FromProgram(p *project.Program) *Generator {
	return &Generator{program: p}
}

// FromConfig creates a Generator from a validated configuration.
func FromConfig(cfg *config.Config) (*Generator, error) {
	ignore, err := cfg.IgnorePatterns()
	if err != nil {
		return nil, err
	}
	return FromDir(cfg.Root).
		WithTasks(cfg.Tasks...).
		Header(cfg.Header).
		IgnoreModules(ignore...).
		Concurrency(cfg.Concurrency), nil
}

// WithTasks adds tasks to run.
func (g *Generator) WithTasks(tasks ...config.Task) *Generator {
	g.tasks = append(g.tasks, tasks...)
	return g
}

// Header sets the text written at the top of every generated file. An empty
// header writes none. The default is config.DefaultHeader.
func (g *Generator) Header(h string) *Generator {
	g.header = h
	g.headerSet = true
	return g
}

// IgnoreModules excludes modules whose canonical path matches any of the
// patterns from every task.
func (g *Generator) IgnoreModules(patterns ...*regexp.Regexp) *Generator {
	g.ignore = append(g.ignore, patterns...)
	return g
}

// Concurrency sets the number of tasks run at once.
func (g *Generator) Concurrency(n int) *Generator {
	g.concurrency = n
	return g
}

// WithLogger sets the logger. The default is slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Indent sets the indentation of generated collections (default: a tab).
func (g *Generator) Indent(indent string) *Generator {
	g.emitter.Indent = indent
	return g
}

func (g *Generator) applyDefaults() {
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.concurrency < 1 {
		g.concurrency = config.DefaultConcurrency
	}
	if !g.headerSet {
		g.header = config.DefaultHeader
	}
}

// Generate runs every task and returns the generated files in task order.
// Failures of all tasks are reported together; no files are returned if any
// task fails.
func (g *Generator) Generate(ctx context.Context) ([]File, error) {
	g.applyDefaults()
	if len(g.tasks) == 0 {
		return nil, errors.New("no tasks configured")
	}
	if g.program == nil {
		if g.root == "" {
			return nil, errors.New("no project root or program configured")
		}
		p, err := project.LoadDir(ctx, g.root, project.WithLogger(g.logger))
		if err != nil {
			return nil, err
		}
		g.program = p
	}

	files := make([]File, len(g.tasks))
	errs := make([]error, len(g.tasks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, t := range g.tasks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			f, err := g.runTask(egCtx, t)
			if err != nil {
				errs[i] = err
				return nil
			}
			files[i] = *f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return files, nil
}

// ToSink generates and writes every file to s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) ([]File, error) {
	files, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := s.WriteFile(ctx, f.Path, f.Content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Path, err)
		}
		g.logger.Info("wrote file",
			slog.String("file", f.Path),
			slog.Int("entries", f.Entries))
	}
	return files, nil
}

// ToDir generates and writes every file under dir.
func (g *Generator) ToDir(ctx context.Context, dir string) ([]File, error) {
	return g.ToSink(ctx, sink.NewFilesystemSink(dir))
}
