// pkg/construct/strategy.go
package construct

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
)

// Kind names a construction strategy. It is fixed per deployment.
type Kind string

const (
	Direct   Kind = "direct"
	Accessor Kind = "accessor"
	Closure  Kind = "closure"
)

var (
	ErrUnknownStrategy   = errors.New("construct: unknown strategy")
	ErrNoConstructor     = errors.New("construct: no matching constructor")
	ErrConstructorFailed = errors.New("construct: constructor failed")
)

// Strategy turns a type descriptor plus constructor arguments into an instance.
// All strategies produce behaviourally identical instances.
type Strategy interface {
	Kind() Kind
	Instantiate(target *catalog.TypeDescriptor, args ...any) (any, error)
}

// Parse maps a configuration value onto a Kind.
func Parse(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Direct, Accessor, Closure:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// ResolveHook observes one-time handle resolutions of caching strategies.
type ResolveHook func(k Kind, target string)

type Option func(*options)

type options struct {
	onResolve ResolveHook
}

func WithResolveHook(h ResolveHook) Option { return func(o *options) { o.onResolve = h } }

// New returns the strategy for k.
func New(k Kind, opts ...Option) (Strategy, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	switch k {
	case Direct:
		return NewDirect(), nil
	case Accessor:
		return newAccessor(o), nil
	case Closure:
		return newClosure(o), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, k)
}

// Error is the InstantiationError surfaced by every strategy.
type Error struct {
	Strategy  Kind
	Target    string
	Signature string
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("construct[%s]: %s%s: %v", e.Strategy, e.Target, e.Signature, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// signature renders the argument types, e.g. "(*catalog.TypeDescriptor)".
func signature(args []any) string {
	if len(args) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(reflect.TypeOf(a).String())
	}
	b.WriteByte(')')
	return b.String()
}

// find picks the first registered constructor accepting args.
func find(k Kind, target *catalog.TypeDescriptor, args []any) (catalog.Constructor, error) {
	if target == nil {
		return catalog.Constructor{}, &Error{Strategy: k, Target: "<nil>", Signature: signature(args), Cause: ErrNoConstructor}
	}
	for _, ct := range target.Constructors() {
		if ct.Accepts(args) {
			return ct, nil
		}
	}
	return catalog.Constructor{}, &Error{Strategy: k, Target: target.Name(), Signature: signature(args), Cause: ErrNoConstructor}
}

// call runs fn, converting panics, errors and nil results into *Error.
func call(k Kind, target *catalog.TypeDescriptor, args []any, fn func([]any) (any, error)) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = &Error{Strategy: k, Target: target.Name(), Signature: signature(args),
				Cause: fmt.Errorf("%w: panic: %v", ErrConstructorFailed, rec)}
		}
	}()
	v, err = fn(args)
	if err != nil {
		return nil, &Error{Strategy: k, Target: target.Name(), Signature: signature(args),
			Cause: fmt.Errorf("%w: %w", ErrConstructorFailed, err)}
	}
	if rv := reflect.ValueOf(v); !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return nil, &Error{Strategy: k, Target: target.Name(), Signature: signature(args),
			Cause: fmt.Errorf("%w: nil instance", ErrConstructorFailed)}
	}
	return v, nil
}
