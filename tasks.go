package typedesc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/broady/typedesc/config"
	"github.com/broady/typedesc/describe"
	"github.com/broady/typedesc/emit"
	"github.com/broady/typedesc/oracle"
	"github.com/broady/typedesc/project"
	"github.com/broady/typedesc/syntax"
)

// taskRun is the state of one task over the program.
type taskRun struct {
	g        *Generator
	task     config.Task
	compiler *describe.Compiler
	logger   *slog.Logger
	entries  []emit.Entry
	errs     []error
}

func (g *Generator) runTask(ctx context.Context, t config.Task) (*File, error) {
	r := &taskRun{
		g:    g,
		task: t,
		compiler: describe.New(g.program, g.program,
			describe.WithExternalMarkers(t.ExternalTypes...),
			describe.WithLogger(g.logger)),
		logger: g.logger.With(slog.String("task", t.File)),
	}

	var visit func(m *project.Module, d syntax.Decl)
	switch t.Type {
	case config.TaskDescribeMethodTypes:
		visit = r.methodTypes
	case config.TaskDescribeTypes:
		visit = r.types
	default:
		return nil, fmt.Errorf("task %s: unknown task type %q", t.File, t.Type)
	}

	for _, m := range r.modules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.File.Walk(func(d syntax.Decl, _ []string) {
			visit(m, d)
		})
	}
	return r.finish()
}

// modules returns the project modules the task looks at: neither library
// modules nor ignored ones.
func (r *taskRun) modules() []*project.Module {
	var out []*project.Module
	for _, m := range r.g.program.Modules() {
		if m.Library {
			continue
		}
		if r.ignored(m.Path) {
			r.logger.Debug("ignoring module", slog.String("module", m.Path))
			continue
		}
		out = append(out, m)
	}
	return out
}

func (r *taskRun) ignored(path string) bool {
	for _, re := range r.g.ignore {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// extendsMarker reports whether d declares a type that extends or implements
// the task's marker. The marker itself is never collected.
func (r *taskRun) extendsMarker(d syntax.Decl) bool {
	if d.DeclName() == r.task.MarkerName {
		return false
	}
	p := r.g.program
	sym := &oracle.Symbol{Name: d.DeclName(), Decls: []syntax.Decl{d}}
	return p.ExtendsMarker(p.DeclaredTypeOf(sym), r.task.MarkerName)
}

func (r *taskRun) fail(code ErrorCode, key, param string, err error) {
	r.errs = append(r.errs, &Error{
		Code:  code,
		Task:  r.task.File,
		Key:   key,
		Param: param,
		Err:   err,
	})
}

func (r *taskRun) key(d syntax.Decl) (string, bool) {
	path, err := r.g.program.CanonicalPathOf(d)
	if err != nil {
		r.fail(CodeLocate, d.DeclName(), "", err)
		return "", false
	}
	return path.String(), true
}

// types describes an interface or type alias extending the marker.
func (r *taskRun) types(_ *project.Module, d syntax.Decl) {
	switch d.(type) {
	case *syntax.InterfaceDecl, *syntax.TypeAliasDecl:
	default:
		return
	}
	if !r.extendsMarker(d) {
		return
	}
	key, ok := r.key(d)
	if !ok {
		return
	}
	desc, err := r.compiler.DescribeDeclaration(d)
	if err != nil {
		r.fail(CodeDescribe, key, "", err)
		return
	}
	value, err := r.g.emitter.Descriptor(desc)
	if err != nil {
		r.fail(CodeEmit, key, "", err)
		return
	}
	r.entries = append(r.entries, emit.Entry{Key: key, Value: value})
}

// methodTypes describes the parameters of every method of a class extending
// the marker. Every parameter is described even after a failure so that all
// of them are reported together.
func (r *taskRun) methodTypes(_ *project.Module, d syntax.Decl) {
	cls, ok := d.(*syntax.ClassDecl)
	if !ok || !r.extendsMarker(cls) {
		return
	}
	if r.task.SkipAbstractClasses && cls.Abstract {
		r.logger.Debug("skipping abstract class", slog.String("class", cls.Name))
		return
	}
	classKey, ok := r.key(cls)
	if !ok {
		return
	}
	for _, m := range cls.Methods {
		key := classKey + "." + m.Name
		params := make([]emit.Param, 0, len(m.Params))
		failed := false
		for _, param := range m.Params {
			p, err := r.describeParam(param)
			if err != nil {
				r.fail(CodeParameter, key, param.Name, err)
				failed = true
				continue
			}
			params = append(params, p)
		}
		if failed {
			continue
		}
		value, err := r.g.emitter.Params(params)
		if err != nil {
			r.fail(CodeEmit, key, "", err)
			continue
		}
		r.entries = append(r.entries, emit.Entry{Key: key, Value: value})
	}
}

func (r *taskRun) describeParam(param *syntax.ParameterDecl) (emit.Param, error) {
	if param.Destructured {
		return emit.Param{}, &describe.Error{
			Code:    describe.CodeUnsupportedSyntax,
			Message: "destructured parameters are not supported",
			Span:    param.Span,
		}
	}
	if param.Type == nil {
		return emit.Param{}, &describe.Error{
			Code:    describe.CodeNoExplicitAnnotation,
			Message: "parameters must have an explicit type",
			Span:    param.Span,
		}
	}
	desc, err := r.compiler.Describe(param.Type, nil)
	if err != nil {
		return emit.Param{}, err
	}
	return emit.Param{Name: param.Name, Type: desc, Optional: param.Optional}, nil
}

// finish sorts the collected entries and renders the module.
func (r *taskRun) finish() (*File, error) {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Key < r.entries[j].Key
	})
	for i := 1; i < len(r.entries); i++ {
		if r.entries[i].Key == r.entries[i-1].Key {
			r.fail(CodeDuplicateKey, r.entries[i].Key, "", errors.New("declared more than once"))
		}
	}
	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}

	content, err := r.g.emitter.Module(&emit.Module{
		Header:       r.g.header,
		ExportedName: r.task.ExportedName,
		Collection:   emit.CollectionType(r.task.CollectionType),
		ValueType:    r.task.ValueType,
		Entries:      r.entries,
	})
	if err != nil {
		return nil, &Error{Code: CodeEmit, Task: r.task.File, Err: err}
	}
	r.logger.Debug("task done", slog.Int("entries", len(r.entries)))
	return &File{Path: r.task.File, Content: content, Entries: len(r.entries)}, nil
}
