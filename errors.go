package typedesc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeDescribe     ErrorCode = "describe"      // a type could not be described
	CodeParameter    ErrorCode = "parameter"     // a method parameter cannot be described
	CodeLocate       ErrorCode = "locate"        // a declaration has no canonical path
	CodeDuplicateKey ErrorCode = "duplicate_key" // two declarations produced the same key
	CodeEmit         ErrorCode = "emit"          // the output module could not be rendered
)

// Error is a failure of one task at one declaration.
type Error struct {
	Code ErrorCode
	// Task is the output file of the failing task.
	Task string
	// Key is the collection key of the declaration, such as
	// "/api/user:UserService.create".
	Key string
	// Param is the parameter name for failures of describe_method_types.
	Param string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Task)
	if e.Key != "" {
		b.WriteString(": ")
		b.WriteString(e.Key)
		if e.Param != "" {
			fmt.Fprintf(&b, "(%s)", e.Param)
		}
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errors returns every *Error joined in err, in order.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e == err {
		return []*Error{e}
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Error
		for _, inner := range joined.Unwrap() {
			out = append(out, Errors(inner)...)
		}
		return out
	}
	if errors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}
