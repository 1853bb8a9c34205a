package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Class groups errors by how the interpreter reacts to them.
type Class int

const (
	// ClassSemantic errors skip the current line's effect.
	ClassSemantic Class = iota
	// ClassSyntax errors reject a malformed line.
	ClassSyntax
	// ClassExternal errors come from the filesystem, a child process, or the
	// prompt.
	ClassExternal
	// ClassFatal errors stop the interpreter.
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassSemantic:
		return "semantic"
	case ClassSyntax:
		return "syntax"
	case ClassExternal:
		return "external"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Predefined errors (sentinel values).
var (
	ErrUnrecognized       = newError(ClassSyntax, "nudhi does not know that")
	ErrSyntax             = newError(ClassSyntax, "invalid syntax")
	ErrMissingQuote       = newError(ClassSyntax, "missing opening quote")
	ErrUnterminatedString = newError(ClassSyntax, "unterminated string")
	ErrInvalidName        = newError(ClassSyntax, "invalid variable name")

	ErrVariableNotFound = newError(ClassSemantic, "variable not found")
	ErrNotString        = newError(ClassSemantic, "variable is not a string")
	ErrNotInteger       = newError(ClassSemantic, "variable is not an integer")
	ErrInvalidCase      = newError(ClassSemantic, "invalid case type")
	ErrNotExpression    = newError(ClassSemantic, "not a valid expression")
	ErrNegativeExponent = newError(ClassSemantic, "negative exponent")
	ErrOverflow         = newError(ClassSemantic, "integer overflow")
	ErrDomain           = newError(ClassSemantic, "result is not a finite number")

	ErrReadFile  = newError(ClassExternal, "read file")
	ErrWriteFile = newError(ClassExternal, "write file")
	ErrCommand   = newError(ClassExternal, "command failed")
	ErrPrompt    = newError(ClassExternal, "read input")

	ErrDivideByZero = newError(ClassFatal, "division by zero")
	ErrReadScript   = newError(ClassFatal, "failed to read script")
	ErrInterrupted  = newError(ClassFatal, "interrupted")

	// ErrHalt is returned by [Interpreter.Exec] when a line terminates the
	// script. [Interpreter.Run] consumes it and returns nil.
	ErrHalt = newError(ClassFatal, "halt")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	class Class
	kind  *Error // sentinel this error derives from
}

// NewError creates a new semantic Error with a message.
func NewError(msg string) *Error {
	return newError(ClassSemantic, msg)
}

func newError(class Class, msg string) *Error {
	e := &Error{msg: msg, class: class}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	e := &Error{err: err, class: ClassExternal}
	e.kind = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind != nil && e.kind == t.kind
}

// Class returns the error's class.
func (e *Error) Class() Class { return e.class }

// Attrs returns the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	attrs = append(attrs, slog.String("class", e.class.String()))

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		class: e.class,
		kind:  e.kind,
	}
}

// Wrapf creates a new Error wrapping a formatted detail message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		class: e.class,
		kind:  e.kind,
	}
}

// ClassOf returns the class of err. Errors that are not an [*Error] are
// treated as external.
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.class
	}

	return ClassExternal
}

// IsFatal reports whether err must stop the interpreter.
func IsFatal(err error) bool {
	return err != nil && ClassOf(err) == ClassFatal
}
