package describe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/broady/typedesc/syntax"
)

// Code identifies why a type could not be described.
type Code string

const (
	CodeUnsupportedSyntax                     Code = "unsupported_syntax"
	CodeMalformedLiteral                      Code = "malformed_literal"
	CodeNonConstantIndex                      Code = "non_constant_index"
	CodeNonObjectIndexBase                    Code = "non_object_index_base"
	CodeMissingProperty                       Code = "missing_property"
	CodeNoExplicitAnnotation                  Code = "no_explicit_annotation"
	CodeRecursiveType                         Code = "recursive_type"
	CodeUnresolvedTypeParameter               Code = "unresolved_type_parameter"
	CodeClassTypeUnsupported                  Code = "class_type_unsupported"
	CodeEnumTypeUnsupported                   Code = "enum_type_unsupported"
	CodeNonObjectHeritage                     Code = "non_object_heritage"
	CodeInvalidIndexKey                       Code = "invalid_index_key"
	CodeDuplicateIndexSignature               Code = "duplicate_index_signature"
	CodeMissingPropertyType                   Code = "missing_property_type"
	CodeAmbiguousOrInvalidExternalDeclaration Code = "ambiguous_or_invalid_external_declaration"
	CodeNonLiteralKeySet                      Code = "non_literal_key_set"
	CodeAmbiguousDeclaration                  Code = "ambiguous_declaration"
)

// Error is a failure to describe a type, located at the offending node.
type Error struct {
	Code    Code
	Message string
	Span    syntax.Span
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", e.Span, e.Code, e.Message)
	if text := snippet(e.Span.Text); text != "" {
		fmt.Fprintf(&b, " (at %q)", text)
	}
	return b.String()
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there
// is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func errorf(n syntax.Node, code Code, format string, args ...any) *Error {
	e := &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		e.Span = n.Pos()
	}
	return e
}

func unsupported(n syntax.Node, format string, args ...any) *Error {
	return errorf(n, CodeUnsupportedSyntax, format, args...)
}

const maxSnippet = 60

// snippet collapses whitespace and shortens s for use in a message.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxSnippet {
		s = s[:maxSnippet-3] + "..."
	}
	return s
}
