package core

import "strings"

// ErrorKind categorizes cold-start resolution failures.
type ErrorKind string

const (
	KindEntryPointNotFound ErrorKind = "entry_point_not_found"
	KindUnsupportedHandler ErrorKind = "unsupported_handler_kind"
	KindConstruction       ErrorKind = "construction_error"
)

// Error is the runtime-facing resolution failure. All kinds are terminal for
// the cold start. KindConstruction points at the runtime's adapter catalog,
// the other two at the user's deployment.
type Error struct {
	Kind       ErrorKind
	EntryPoint string
	Function   FunctionKind
	Target     string
	Detail     string
	Cause      error
}

// Sentinels for errors.Is; matching is by Kind only.
var (
	ErrEntryPointNotFound     = &Error{Kind: KindEntryPointNotFound}
	ErrUnsupportedHandlerKind = &Error{Kind: KindUnsupportedHandler}
	ErrConstruction           = &Error{Kind: KindConstruction}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')
	if e.EntryPoint != "" {
		b.WriteString(" entry point ")
		b.WriteString(e.EntryPoint)
	}
	if e.Function != 0 {
		b.WriteString(" (")
		b.WriteString(e.Function.String())
		b.WriteByte(')')
	}
	if e.Target != "" {
		b.WriteString(" target ")
		b.WriteString(e.Target)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the ErrorKind of err, or "" when err is not a resolution error.
func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
