package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const valid = `
root: ./src
ignoreModules: ["^/generated/"]
tasks:
  - type: describe_method_types
    markerName: ApiService
    externalTypes: [ExternalValue]
    skipAbstractClasses: true
    file: gen/methods.ts
    exportedName: methodTypes
    collectionType: readonly_map
  - type: describe_types
    markerName: Dto
    file: gen/types.ts
    exportedName: dtoTypes
    collectionType: object
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(valid))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, DefaultConcurrency)
	}
	if cfg.Header != DefaultHeader {
		t.Errorf("Header = %q, want %q", cfg.Header, DefaultHeader)
	}
	if len(cfg.Tasks) != 2 {
		t.Fatalf("len(Tasks) = %d, want 2", len(cfg.Tasks))
	}
	task := cfg.Tasks[0]
	if task.Type != TaskDescribeMethodTypes || task.MarkerName != "ApiService" || !task.SkipAbstractClasses {
		t.Errorf("Tasks[0] = %+v", task)
	}
	if !slices.Equal(task.ExternalTypes, []string{"ExternalValue"}) {
		t.Errorf("Tasks[0].ExternalTypes = %v, want [ExternalValue]", task.ExternalTypes)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "empty"},
		{"unknown field", "root: .\nroots: .\n", "roots"},
		{"bad type", "root: .\nconcurrency: many\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
		msg    string
	}{
		{"missing root", func(c *Config) { c.Root = "" }, "root", "required"},
		{"no tasks", func(c *Config) { c.Tasks = nil }, "tasks", "required"},
		{"concurrency", func(c *Config) { c.Concurrency = 100 }, "concurrency", "must be at most 64"},
		{"bad regexp", func(c *Config) { c.IgnoreModules = []string{"("} }, "ignoreModules[0]", "must be a valid regular expression"},
		{"task type", func(c *Config) { c.Tasks[0].Type = "collect_classes" }, "tasks[0].type", "must be one of: describe_method_types describe_types"},
		{"marker", func(c *Config) { c.Tasks[1].MarkerName = "" }, "tasks[1].markerName", "required"},
		{"file", func(c *Config) { c.Tasks[0].File = "../out.ts" }, "tasks[0].file", "must be a clean relative path"},
		{"exported name", func(c *Config) { c.Tasks[0].ExportedName = "default" }, "tasks[0].exportedName", "must be a valid identifier"},
		{"collection", func(c *Config) { c.Tasks[1].CollectionType = "set" }, "tasks[1].collectionType", "must be one of: map object readonly_map readonly_object"},
		{"duplicate file", func(c *Config) { c.Tasks[1].File = c.Tasks[0].File }, "tasks[1].file", "same file as tasks[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(valid))
			if err != nil {
				t.Fatal(err)
			}
			tt.modify(cfg)
			err = cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if got := verr.Fields[tt.field]; got != tt.msg {
				t.Errorf("Fields[%q] = %q, want %q (all: %v)", tt.field, got, tt.msg, verr.Fields)
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg, err := Parse([]byte(valid))
	if err != nil {
		t.Fatal(err)
	}
	err = cfg.Set([]string{
		"concurrency=8",
		"tasks.0.file=out/methods.ts",
		"tasks.1.skipAbstractClasses=true",
		"ignoreModules=^/a/",
		"ignoreModules=^/b/",
	})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Concurrency)
	}
	if cfg.Tasks[0].File != "out/methods.ts" {
		t.Errorf("Tasks[0].File = %q, want out/methods.ts", cfg.Tasks[0].File)
	}
	if cfg.Tasks[0].MarkerName != "ApiService" {
		t.Errorf("Tasks[0].MarkerName = %q, override clobbered other fields", cfg.Tasks[0].MarkerName)
	}
	if !cfg.Tasks[1].SkipAbstractClasses {
		t.Error("Tasks[1].SkipAbstractClasses = false, want true")
	}
	if !slices.Equal(cfg.IgnoreModules, []string{"^/a/", "^/b/"}) {
		t.Errorf("IgnoreModules = %v, want [^/a/ ^/b/]", cfg.IgnoreModules)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after Set error = %v", err)
	}
}

func TestSet_Errors(t *testing.T) {
	cfg, err := Parse([]byte(valid))
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range []string{"noequals", "=value", "nosuchfield=1", "concurrency=lots"} {
		if err := cfg.Set([]string{o}); err == nil {
			t.Errorf("Set(%q) error = nil", o)
		}
	}
}

func TestLoad_RelativeRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typedesc.yaml")
	if err := os.WriteFile(path, []byte(valid), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(dir, "src"); cfg.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Root, want)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestIgnorePatterns(t *testing.T) {
	cfg := &Config{IgnoreModules: []string{"^/generated/", "_test$"}}
	res, err := cfg.IgnorePatterns()
	if err != nil {
		t.Fatalf("IgnorePatterns() error = %v", err)
	}
	if len(res) != 2 || !res[0].MatchString("/generated/api") || !res[1].MatchString("/api/user_test") {
		t.Errorf("IgnorePatterns() = %v", res)
	}

	cfg.IgnoreModules = []string{"["}
	if _, err := cfg.IgnorePatterns(); err == nil {
		t.Error("IgnorePatterns() with bad expression error = nil")
	}
}
