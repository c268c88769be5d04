package domain

import (
	"fmt"
	"strings"
)

// ErrorClass categorises failures of the reflection engine.
type ErrorClass string

// Error classes raised by the resolver, the coercion engine and the guard.
const (
	ClassRecordMissing  ErrorClass = "RecordMissing"        // stale entity or absent component
	ClassInvalidPath    ErrorClass = "InvalidPath"          // path does not address a live value
	ClassTypeMismatch   ErrorClass = "TypeMismatch"         // coercion source/target incompatible
	ClassSelfAssignment ErrorClass = "SelfAssignment"       // write source aliases the destination
	ClassUnsupported    ErrorClass = "UnsupportedOperation" // script value kind has no coercion
	ClassAliasing       ErrorClass = "Aliasing"             // conflicting borrow within one operation
	ClassExpired        ErrorClass = "Expired"              // reference used after its phase ended
)

// Sentinels usable with errors.Is to test the class of an *Error.
var (
	ErrRecordMissing  = &Error{Class: ClassRecordMissing}
	ErrInvalidPath    = &Error{Class: ClassInvalidPath}
	ErrTypeMismatch   = &Error{Class: ClassTypeMismatch}
	ErrSelfAssignment = &Error{Class: ClassSelfAssignment}
	ErrUnsupported    = &Error{Class: ClassUnsupported}
	ErrAliasing       = &Error{Class: ClassAliasing}
	ErrExpired        = &Error{Class: ClassExpired}
)

// Error is a classified engine failure. Trace is the display trace of the
// offending Reference.
type Error struct {
	Class   ErrorClass
	Trace   string
	Message string

	// InvalidPath details.
	ValidPrefix   string
	InvalidSuffix string

	// TypeMismatch details.
	Expected string
	Got      string
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(string(e.Class))
	sb.WriteString(": ")

	switch {
	case e.Message != "":
		sb.WriteString(e.Message)
	case e.Class == ClassInvalidPath:
		fmt.Fprintf(&sb, "the path %s is invalid (valid prefix %q, invalid suffix %q)", e.Trace, e.ValidPrefix, e.InvalidSuffix)
	case e.Class == ClassTypeMismatch:
		fmt.Fprintf(&sb, "cannot assign %s to %s (expected %s)", e.Got, e.Trace, e.Expected)
	default:
		sb.WriteString(e.Trace)
	}

	return sb.String()
}

// Is matches any *Error of the same class, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Class == e.Class
}

func recordMissing(ref Reference, format string, args ...any) *Error {
	return &Error{Class: ClassRecordMissing, Trace: ref.String(), Message: fmt.Sprintf(format, args...)}
}

func invalidPath(ref Reference, prefix, suffix string) *Error {
	return &Error{Class: ClassInvalidPath, Trace: ref.String(), ValidPrefix: prefix, InvalidSuffix: suffix}
}

func typeMismatch(ref Reference, expected, got string) *Error {
	return &Error{Class: ClassTypeMismatch, Trace: ref.String(), Expected: expected, Got: got}
}

func selfAssignment(ref Reference) *Error {
	return &Error{
		Class:   ClassSelfAssignment,
		Trace:   ref.String(),
		Message: fmt.Sprintf("assigning %s from a reference to the same record is disallowed, clone the value first", ref),
	}
}

func unsupported(ref Reference, got string) *Error {
	return &Error{
		Class:   ClassUnsupported,
		Trace:   ref.String(),
		Message: fmt.Sprintf("a %s value cannot be stored in %s", got, ref),
	}
}

func expired(ref Reference) *Error {
	return &Error{
		Class:   ClassExpired,
		Trace:   ref.String(),
		Message: fmt.Sprintf("%s was used after the phase that created it ended", ref),
	}
}

func inexact(ref Reference, v ScriptValue) *Error {
	return &Error{
		Class:    ClassTypeMismatch,
		Trace:    ref.String(),
		Expected: "integer within ±2^53",
		Got:      v.String(),
		Message:  fmt.Sprintf("%s holds %s, which a script number cannot represent exactly", ref, v),
	}
}
