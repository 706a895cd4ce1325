package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // array construction and reshape
	PhaseAccess    Phase = "access"    // element access and assignment
	PhaseSlice     Phase = "slice"     // slicing, concatenation
	PhaseReduce    Phase = "reduce"    // reductions and intrinsics
	PhaseCompile   Phase = "compile"   // format descriptor compilation
	PhaseWrite     Phase = "write"     // formatted output
	PhaseRead      Phase = "read"      // formatted input
	PhaseUnit      Phase = "unit"      // unit table operations
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindShape        Kind = "shape"
	KindIndex        Kind = "index"
	KindFormatSyntax Kind = "format_syntax"
	KindIO           Kind = "io"
	KindTypeMismatch Kind = "type_mismatch"
	KindConversion   Kind = "conversion"
	KindReleased     Kind = "released"
	KindUnsupported  Kind = "unsupported"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	Descriptor string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Descriptor != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Descriptor != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", descriptor ")
			b.WriteString(e.Descriptor)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("descriptor ")
			b.WriteString(e.Descriptor)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Descriptor != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Descriptor sets the format descriptor involved
func (b *Builder) Descriptor(d string) *Builder {
	b.err.Descriptor = d
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShapeMismatch creates a shape error for incompatible sizes or ranks
func ShapeMismatch(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindShape).Detail(detail, args...).Build()
}

// OutOfBounds creates an index error for a subscript tuple outside the declared bounds
func OutOfBounds(phase Phase, index, lower, upper []int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndex,
		Detail: fmt.Sprintf("index %v outside bounds %v:%v", index, lower, upper),
		Value:  append([]int(nil), index...),
	}
}

// FormatSyntax creates a format syntax error at byte offset pos of src
func FormatSyntax(src string, pos int, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindFormatSyntax,
		Detail: fmt.Sprintf("%s at offset %d in %q", detail, pos, src),
		Value:  pos,
	}
}

// IO wraps a stream failure, keeping the stream's error as the cause
func IO(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// TypeMismatch creates a type mismatch between a Go value and a format descriptor
func TypeMismatch(phase Phase, goType, descriptor string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		GoType:     goType,
		Descriptor: descriptor,
	}
}

// Conversion creates an error for input text that cannot be converted
func Conversion(phase Phase, descriptor, text string, cause error) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindConversion,
		Descriptor: descriptor,
		Detail:     fmt.Sprintf("cannot convert %q", text),
		Value:      text,
		Cause:      cause,
	}
}

// Released creates an error for access through a view whose owner no longer holds data
func Released(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReleased,
		Detail: "owner array storage was released or replaced",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, what string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what + " not found",
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsShape reports whether err is a shape error
func IsShape(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindShape
}

// IsIndex reports whether err is an index error
func IsIndex(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindIndex
}

// IsFormatSyntax reports whether err is a format syntax error
func IsFormatSyntax(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindFormatSyntax
}

// IsIO reports whether err is a stream failure
func IsIO(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindIO
}
