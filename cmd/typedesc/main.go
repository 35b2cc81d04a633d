package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/tools/txtar"

	"github.com/broady/typedesc"
	"github.com/broady/typedesc/config"
	"github.com/broady/typedesc/describe"
	"github.com/broady/typedesc/emit"
	"github.com/broady/typedesc/project"
	"github.com/broady/typedesc/sink"
)

type CLI struct {
	Verbose bool `help:"Log debug output to stderr." short:"v"`

	Version  VersionCmd  `cmd:"" help:"Print version information."`
	Describe DescribeCmd `cmd:"" help:"Print the type descriptor of one declaration."`
	Gen      GenCmd      `cmd:"" help:"Run the configured tasks and write the generated files."`
	Check    CheckCmd    `cmd:"" help:"Verify that the generated files are up to date."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(stdout io.Writer) error {
	fmt.Fprintln(stdout, Version())
	return nil
}

type DescribeCmd struct {
	Root     string   `arg:"" help:"Project root directory, or a txtar archive of source files."`
	File     string   `arg:"" help:"Source file relative to the root."`
	Name     string   `arg:"" help:"Declaration name, dotted for namespace members."`
	External []string `help:"Marker names of types described by name only." short:"e"`
	Format   string   `help:"Output format." enum:"json,ts" default:"json" short:"f"`
}

func (c *DescribeCmd) Run(ctx context.Context, logger *slog.Logger, stdout io.Writer) error {
	p, err := c.load(ctx, logger)
	if err != nil {
		return err
	}
	m, ok := p.ModuleOfFile(c.File)
	if !ok {
		return fmt.Errorf("%s: file not loaded", c.File)
	}
	decl, err := p.Lookup(m, c.Name)
	if err != nil {
		return err
	}

	compiler := describe.New(p, p,
		describe.WithExternalMarkers(c.External...),
		describe.WithLogger(logger))
	d, err := compiler.DescribeDeclaration(decl)
	if err != nil {
		return err
	}

	if c.Format == "ts" {
		var e emit.Emitter
		s, err := e.Descriptor(d)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, s)
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

func (c *DescribeCmd) load(ctx context.Context, logger *slog.Logger) (*project.Program, error) {
	if !strings.HasSuffix(c.Root, ".txtar") {
		return project.LoadDir(ctx, c.Root, project.WithLogger(logger))
	}
	ar, err := txtar.ParseFile(c.Root)
	if err != nil {
		return nil, err
	}
	fsys, err := txtar.FS(ar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Root, err)
	}
	return project.Load(ctx, fsys, project.WithLogger(logger))
}

// GenFlags are shared by gen and check.
type GenFlags struct {
	Config string   `arg:"" help:"Configuration file." default:"typedesc.yaml" type:"existingfile"`
	Out    string   `help:"Output directory for generated files." short:"o" default:"."`
	Set    []string `help:"Override a configuration value, e.g. tasks.0.file=gen/api.ts." short:"s"`
}

func (f *GenFlags) generator(logger *slog.Logger) (*typedesc.Generator, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Set(f.Set); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Config, err)
	}
	gen, err := typedesc.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return gen.WithLogger(logger), nil
}

type GenCmd struct {
	GenFlags `embed:""`
}

func (c *GenCmd) Run(ctx context.Context, logger *slog.Logger) error {
	gen, err := c.generator(logger)
	if err != nil {
		return err
	}
	files, err := gen.ToDir(ctx, c.Out)
	if err != nil {
		return err
	}
	logger.Info("generated", slog.Int("files", len(files)), slog.String("out", c.Out))
	return nil
}

type CheckCmd struct {
	GenFlags `embed:""`
}

func (c *CheckCmd) Run(ctx context.Context, logger *slog.Logger, stdout io.Writer) error {
	gen, err := c.generator(logger)
	if err != nil {
		return err
	}
	check := &sink.CheckSink{Root: c.Out}
	if _, err := gen.ToSink(ctx, check); err != nil {
		return err
	}
	stale := check.Stale()
	if len(stale) == 0 {
		fmt.Fprintln(stdout, "generated files are up to date")
		return nil
	}
	for _, path := range stale {
		fmt.Fprintf(stdout, "stale: %s\n", path)
	}
	return fmt.Errorf("%d generated files are out of date; run typedesc gen", len(stale))
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("typedesc"),
		kong.Description("Generate runtime type descriptors from TypeScript type syntax."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cli.Verbose)
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}
