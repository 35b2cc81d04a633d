package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/typedesc/emit"
	"github.com/broady/typedesc/sink"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return emit.IsBindingName(fl.Field().String())
	}))
	must(v.RegisterValidation("outpath", func(fl validator.FieldLevel) bool {
		return sink.ValidatePath(fl.Field().String()) == nil
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidationError lists every invalid field of a configuration.
type ValidationError struct {
	// Fields maps field paths, such as "tasks[0].file", to messages.
	Fields map[string]string
	// Messages holds "path: message" entries in validation order.
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Messages, "; ")
}

// Validate checks c against its field rules. Output files must be distinct.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var valErrs validator.ValidationErrors
	if err != nil && !errors.As(err, &valErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	verr := &ValidationError{Fields: make(map[string]string)}
	add := func(field, msg string) {
		verr.Fields[field] = msg
		verr.Messages = append(verr.Messages, field+": "+msg)
	}
	for _, ve := range valErrs {
		add(fieldPath(ve), formatValidationError(ve))
	}

	seen := make(map[string]int)
	for i, t := range c.Tasks {
		if t.File == "" {
			continue
		}
		if j, ok := seen[t.File]; ok {
			add(fmt.Sprintf("tasks[%d].file", i), fmt.Sprintf("same file as tasks[%d]", j))
			continue
		}
		seen[t.File] = i
	}

	if len(verr.Messages) > 0 {
		return verr
	}
	return nil
}

// fieldPath returns the namespace of ve without the root struct name.
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "regexp":
		return "must be a valid regular expression"
	case "identifier":
		return "must be a valid identifier"
	case "outpath":
		return "must be a clean relative path"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
