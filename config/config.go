// Package config loads the YAML configuration of a generation run.
//
// A configuration names the project root and a list of tasks. Values can be
// overridden from the command line with "path=value" pairs such as
// "tasks.0.file=gen/types.ts", using the YAML field names.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"
)

// Task types.
const (
	TaskDescribeMethodTypes = "describe_method_types"
	TaskDescribeTypes       = "describe_types"
)

// DefaultHeader is the header of generated files when none is configured.
const DefaultHeader = "// Code generated by typedesc. DO NOT EDIT."

// DefaultConcurrency is the number of tasks run at once when none is configured.
const DefaultConcurrency = 4

// Config is the root of a configuration file.
type Config struct {
	// Root is the TypeScript project root. A relative root is resolved
	// against the directory of the configuration file.
	Root string `yaml:"root" validate:"required"`

	// IgnoreModules are regular expressions over canonical module paths.
	// Declarations in matching modules are not collected.
	IgnoreModules []string `yaml:"ignoreModules" validate:"dive,regexp"`

	// Concurrency is the number of tasks run at once.
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=64"`

	// Header is written at the top of every generated file.
	Header string `yaml:"header"`

	Tasks []Task `yaml:"tasks" validate:"required,min=1,dive"`
}

// Task is one generated file.
type Task struct {
	Type string `yaml:"type" validate:"required,oneof=describe_method_types describe_types"`

	// MarkerName selects the classes (describe_method_types) or interfaces
	// and aliases (describe_types) to describe: those that are, extend or
	// implement a type of this name.
	MarkerName string `yaml:"markerName" validate:"required"`

	// ExternalTypes are marker names whose subtypes are described by name
	// instead of by structure.
	ExternalTypes []string `yaml:"externalTypes" validate:"dive,required"`

	SkipAbstractClasses bool `yaml:"skipAbstractClasses"`

	// File is the output path relative to the output directory.
	File string `yaml:"file" validate:"required,outpath"`

	ExportedName   string `yaml:"exportedName" validate:"required,identifier"`
	CollectionType string `yaml:"collectionType" validate:"required,oneof=map object readonly_map readonly_object"`

	// ValueType is the TypeScript type of the collection values
	// (default: "unknown").
	ValueType string `yaml:"valueType"`
}

// Load reads, defaults and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

// Parse decodes a configuration and applies defaults. Unknown fields are
// errors. The result is not validated, so that overrides can still be
// applied.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
}

var overrideDecoder = newOverrideDecoder()

func newOverrideDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("yaml")
	return d
}

// Set applies "path=value" overrides, such as "concurrency=8" or
// "tasks.1.skipAbstractClasses=true". A repeated path sets a list field.
func (c *Config) Set(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	values := make(map[string][]string)
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q: want path=value", o)
		}
		values[key] = append(values[key], value)
	}
	if err := overrideDecoder.Decode(c, values); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

// IgnorePatterns compiles IgnoreModules.
func (c *Config) IgnorePatterns() ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(c.IgnoreModules))
	for _, expr := range c.IgnoreModules {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("ignoreModules: %w", err)
		}
		out = append(out, re)
	}
	return out, nil
}
