package typedesc_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/broady/typedesc"
	"github.com/broady/typedesc/config"
	"github.com/broady/typedesc/describe"
	"github.com/broady/typedesc/internal/tstest"
	"github.com/broady/typedesc/sink"
)

const services = `
-- api/base.ts --
export abstract class ApiService {}
export interface Model {}
-- api/user.ts --
import {ApiService, Model} from "./base"

export interface User extends Model {
	id: number
	name?: string
}

export type Role = "admin" | "user"

export class UserService extends ApiService {
	find(id: number, verbose?: boolean) {}
	rename(user: User, name: string) {}
}

export abstract class BaseService extends ApiService {
	ping(n: number) {}
}
-- internal/hidden.ts --
import {ApiService} from "../api/base"

export class Hidden extends ApiService {
	run(x: string) {}
}
`

const userDescriptor = `{type: "object", properties: {id: {type: "number"}, name: {type: "string", optional: true}}}`

func methodsTask() config.Task {
	return config.Task{
		Type:                config.TaskDescribeMethodTypes,
		MarkerName:          "ApiService",
		SkipAbstractClasses: true,
		File:                "methods.ts",
		ExportedName:        "methods",
		CollectionType:      "map",
	}
}

func typesTask() config.Task {
	return config.Task{
		Type:           config.TaskDescribeTypes,
		MarkerName:     "Model",
		File:           "types.ts",
		ExportedName:   "types",
		CollectionType: "object",
	}
}

func TestGenerator_ToSink(t *testing.T) {
	p := tstest.Load(t, services)
	mem := sink.NewMemorySink()

	files, err := typedesc.FromProgram(p).
		WithTasks(methodsTask(), typesTask()).
		IgnoreModules(regexp.MustCompile(`^/internal/`)).
		ToSink(t.Context(), mem)
	if err != nil {
		t.Fatalf("ToSink() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Path != "methods.ts" || files[1].Path != "types.ts" {
		t.Errorf("paths = %s, %s, want methods.ts, types.ts", files[0].Path, files[1].Path)
	}

	wantMethods := config.DefaultHeader + "\n\n" +
		"export const methods: Map<string, unknown> = new Map([\n" +
		`	["/api/user:UserService.find", [{name: "id", type: {type: "number"}}, {name: "verbose", type: {type: "boolean"}, optional: true}]],` + "\n" +
		`	["/api/user:UserService.rename", [{name: "user", type: ` + userDescriptor + `}, {name: "name", type: {type: "string"}}]],` + "\n" +
		"] as [string, unknown][]);\n"
	if got := string(mem.Get("methods.ts")); got != wantMethods {
		t.Errorf("methods.ts =\n%s\nwant\n%s", got, wantMethods)
	}
	if files[0].Entries != 2 {
		t.Errorf("methods entries = %d, want 2", files[0].Entries)
	}

	wantTypes := config.DefaultHeader + "\n\n" +
		"export const types: {[k: string]: unknown} = {\n" +
		`	"/api/user:User": ` + userDescriptor + ",\n" +
		"};\n"
	if got := string(mem.Get("types.ts")); got != wantTypes {
		t.Errorf("types.ts =\n%s\nwant\n%s", got, wantTypes)
	}
}

func TestGenerator_AbstractAndIgnored(t *testing.T) {
	p := tstest.Load(t, services)
	task := methodsTask()
	task.SkipAbstractClasses = false

	files, err := typedesc.FromProgram(p).
		WithTasks(task).
		Header("// generated").
		Generate(t.Context())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(files[0].Content)
	if !strings.HasPrefix(content, "// generated\n\n") {
		t.Errorf("content does not start with the header:\n%s", content)
	}
	for _, key := range []string{
		`"/api/user:BaseService.ping"`,
		`"/internal/hidden:Hidden.run"`,
		`"/api/user:UserService.find"`,
	} {
		if !strings.Contains(content, key) {
			t.Errorf("content does not contain %s:\n%s", key, content)
		}
	}
	if strings.Contains(content, "ApiService") {
		t.Errorf("the marker class itself was collected:\n%s", content)
	}
	if files[0].Entries != 4 {
		t.Errorf("Entries = %d, want 4", files[0].Entries)
	}
}

func TestGenerator_Header(t *testing.T) {
	tests := []struct {
		name       string
		header     *string
		wantPrefix string
	}{
		{"default", nil, config.DefaultHeader + "\n\nexport const types"},
		{"custom", ptr("// custom"), "// custom\n\nexport const types"},
		{"none", ptr(""), "export const types"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := typedesc.FromProgram(tstest.Load(t, services)).WithTasks(typesTask())
			if tt.header != nil {
				gen.Header(*tt.header)
			}
			files, err := gen.Generate(t.Context())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got := string(files[0].Content); !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("content = %q, want prefix %q", got, tt.wantPrefix)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestGenerator_ParameterErrors(t *testing.T) {
	p := tstest.Load(t, `
-- api.ts --
export class ApiService {}

export class Broken extends ApiService {
	bad(x, {a}: {a: string}, y: symbol, ok: number) {}
	fine(s: string) {}
}
`)
	_, err := typedesc.FromProgram(p).WithTasks(methodsTask()).Generate(t.Context())
	if err == nil {
		t.Fatal("Generate() error = nil, want error")
	}

	errs := typedesc.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("len(Errors) = %d, want 3: %v", len(errs), err)
	}
	tests := []struct {
		param string
		code  describe.Code
	}{
		{"x", describe.CodeNoExplicitAnnotation},
		{"{a}", describe.CodeUnsupportedSyntax},
		{"y", describe.CodeUnsupportedSyntax},
	}
	for i, tt := range tests {
		e := errs[i]
		if e.Code != typedesc.CodeParameter {
			t.Errorf("errs[%d].Code = %s, want %s", i, e.Code, typedesc.CodeParameter)
		}
		if e.Key != "/api:Broken.bad" {
			t.Errorf("errs[%d].Key = %s, want /api:Broken.bad", i, e.Key)
		}
		if e.Param != tt.param {
			t.Errorf("errs[%d].Param = %s, want %s", i, e.Param, tt.param)
		}
		if got := describe.CodeOf(e); got != tt.code {
			t.Errorf("CodeOf(errs[%d]) = %s, want %s", i, got, tt.code)
		}
		if e.Task != "methods.ts" {
			t.Errorf("errs[%d].Task = %s, want methods.ts", i, e.Task)
		}
	}
	if !strings.HasPrefix(errs[0].Error(), "methods.ts: /api:Broken.bad(x): ") {
		t.Errorf("Error() = %q", errs[0].Error())
	}
}

func TestGenerator_DuplicateKey(t *testing.T) {
	p := tstest.Load(t, `
-- api.ts --
export class ApiService {}

export class Svc extends ApiService {
	static find(id: number) {}
	find(id: string) {}
}
`)
	_, err := typedesc.FromProgram(p).WithTasks(methodsTask()).Generate(t.Context())
	errs := typedesc.Errors(err)
	if len(errs) != 1 {
		t.Fatalf("len(Errors) = %d, want 1: %v", len(errs), err)
	}
	if errs[0].Code != typedesc.CodeDuplicateKey || errs[0].Key != "/api:Svc.find" {
		t.Errorf("error = %s %s, want %s /api:Svc.find", errs[0].Code, errs[0].Key, typedesc.CodeDuplicateKey)
	}
}

func TestGenerator_DescribeErrorsAcrossTasks(t *testing.T) {
	p := tstest.Load(t, `
-- models.ts --
export interface Model {}
export interface Loop extends Model { next: Loop }
export class ApiService {}
export class Svc extends ApiService {
	m(x: Loop) {}
}
`)
	_, err := typedesc.FromProgram(p).
		WithTasks(methodsTask(), typesTask()).
		Concurrency(1).
		Generate(t.Context())
	errs := typedesc.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("len(Errors) = %d, want 2: %v", len(errs), err)
	}
	if errs[0].Task != "methods.ts" || errs[1].Task != "types.ts" {
		t.Errorf("tasks = %s, %s, want methods.ts, types.ts", errs[0].Task, errs[1].Task)
	}
	if errs[1].Code != typedesc.CodeDescribe {
		t.Errorf("errs[1].Code = %s, want %s", errs[1].Code, typedesc.CodeDescribe)
	}
	for i, e := range errs {
		if got := describe.CodeOf(e); got != describe.CodeRecursiveType {
			t.Errorf("CodeOf(errs[%d]) = %s, want %s", i, got, describe.CodeRecursiveType)
		}
	}
}

func TestGenerator_ExternalTypes(t *testing.T) {
	p := tstest.Load(t, `
-- api.ts --
export interface Model {}
export interface Opaque {}
export interface Blob extends Opaque {}
export interface Upload extends Model {
	data: Blob
}
`)
	task := typesTask()
	task.ExternalTypes = []string{"Opaque"}
	task.CollectionType = "readonly_object"
	task.ValueType = "Descriptor"

	files, err := typedesc.FromProgram(p).WithTasks(task).Indent("  ").Generate(t.Context())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := config.DefaultHeader + "\n\n" +
		"export const types: {readonly [k: string]: Descriptor} = {\n" +
		`  "/api:Upload": {type: "object", properties: {data: {type: "external", name: "/api:Blob"}}},` + "\n" +
		"};\n"
	if got := string(files[0].Content); got != want {
		t.Errorf("content =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerator_Errors(t *testing.T) {
	if _, err := typedesc.FromProgram(tstest.Load(t, services)).Generate(t.Context()); err == nil {
		t.Error("Generate() without tasks error = nil, want error")
	}
	if _, err := (&typedesc.Generator{}).WithTasks(typesTask()).Generate(t.Context()); err == nil {
		t.Error("Generate() without program error = nil, want error")
	}

	task := typesTask()
	task.Type = "decorate"
	if _, err := typedesc.FromProgram(tstest.Load(t, services)).WithTasks(task).Generate(t.Context()); err == nil {
		t.Error("Generate() with unknown task type error = nil, want error")
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := typedesc.FromProgram(tstest.Load(t, services)).WithTasks(typesTask()).Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() with canceled context error = %v, want %v", err, context.Canceled)
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	files := map[string]string{
		"src/api/base.ts":   "export interface Model {}\n",
		"src/api/user.ts":   "import {Model} from \"./base\"\nexport interface User extends Model { id: number }\n",
		"src/legacy/old.ts": "import {Model} from \"../api/base\"\nexport interface Old extends Model { x: symbol }\n",
		"typedesc.yaml": `root: src
ignoreModules: ["^/legacy/"]
tasks:
  - type: describe_types
    markerName: Model
    file: gen/types.ts
    exportedName: types
    collectionType: map
`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.Load(filepath.Join(dir, "typedesc.yaml"))
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Root != src {
		t.Errorf("Root = %s, want %s", cfg.Root, src)
	}
	gen, err := typedesc.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	out := filepath.Join(dir, "out")
	if _, err := gen.ToDir(t.Context(), out); err != nil {
		t.Fatalf("ToDir() error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(out, "gen", "types.ts"))
	if err != nil {
		t.Fatal(err)
	}
	want := config.DefaultHeader + "\n\n" +
		"export const types: Map<string, unknown> = new Map([\n" +
		`	["/api/user:User", {type: "object", properties: {id: {type: "number"}}}],` + "\n" +
		"] as [string, unknown][]);\n"
	if string(got) != want {
		t.Errorf("types.ts =\n%s\nwant\n%s", got, want)
	}
}
