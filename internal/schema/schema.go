// Package schema implements the structural validators that every declared
// block passes through before rendering. A Schema parses an untyped payload,
// applies defaults, drops unknown keys, and reports violations as a stable,
// ordered list of issues. The engine never inspects payloads reflectively
// beyond the shapes declared here; the catalog exporter consumes the same
// schemas through Describe rather than reaching into validator internals.
package schema

import (
	"fmt"
	"strings"
)

// Issue describes a single violation found during validation.
type Issue struct {
	// Path is the dotted location of the violation ("items.0.title").
	// Empty when the violation is at the root.
	Path    string
	Message string
}

// String renders the issue as "<path>: <message>", omitting the path when the
// violation is at the root.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Issues is an ordered list of violations. Order is deterministic: fields are
// checked in declaration order, array elements in index order.
type Issues []Issue

// Error joins the issues one per line, the form surfaced in development UIs.
func (is Issues) Error() string {
	lines := make([]string, 0, len(is))
	for _, issue := range is {
		lines = append(lines, issue.String())
	}
	return strings.Join(lines, "\n")
}

// Flat joins the issues with semicolons for single-line log and tooling output.
func (is Issues) Flat() string {
	parts := make([]string, 0, len(is))
	for _, issue := range is {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// prefixed returns a copy of the issues nested under the given path segment.
func (is Issues) prefixed(segment string) Issues {
	out := make(Issues, 0, len(is))
	for _, issue := range is {
		if issue.Path == "" {
			issue.Path = segment
		} else {
			issue.Path = segment + "." + issue.Path
		}
		out = append(out, issue)
	}
	return out
}

// Result is the outcome of validating one payload. When OK, Data holds the
// coerced payload: defaults applied, unknown keys dropped. Data is never the
// raw input aliased back to the caller.
type Result struct {
	OK     bool
	Data   any
	Issues Issues
}

func ok(data any) Result    { return Result{OK: true, Data: data} }
func fail(is Issues) Result { return Result{Issues: is} }

func failf(path, format string, args ...any) Result {
	return fail(Issues{{Path: path, Message: fmt.Sprintf(format, args...)}})
}

// Schema validates untyped payloads against a declared shape.
type Schema interface {
	// Validate is a pure function of (schema, value); it never panics on
	// malformed input and never mutates the input value.
	Validate(value any) Result
	// Describe reports the simplified shape used by catalog export.
	Describe() Shape
}

// Shape is the reflection-free description of a schema consumed by tooling.
type Shape struct {
	Type     string       `json:"type"`
	Optional bool         `json:"optional,omitempty"`
	NonEmpty bool         `json:"nonEmpty,omitempty"`
	Default  any          `json:"default,omitempty"`
	Enum     []string     `json:"enum,omitempty"`
	Elem     *Shape       `json:"elem,omitempty"`
	Fields   []FieldShape `json:"fields,omitempty"`
}

// FieldShape pairs an object field name with its shape, in declaration order.
type FieldShape struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
}

// base carries the modifiers shared by all schema kinds. A field with a
// default is implicitly optional: absence is filled, not reported.
type base struct {
	optional   bool
	hasDefault bool
	defValue   any
}

func (b base) isOptional() bool     { return b.optional || b.hasDefault }
func (b base) defaultValue() (any, bool) { return b.defValue, b.hasDefault }
