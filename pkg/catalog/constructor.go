package catalog

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoZeroConstructor is returned by TypeDescriptor.New when only
// argument-taking constructors are registered.
var ErrNoZeroConstructor = errors.New("catalog: no zero-arg constructor")

var errorType = reflect.TypeFor[error]()

// Constructor is one way of producing *T. Constructors built with Ctor0/Ctor1
// also carry an erased closure that skips reflection entirely.
type Constructor struct {
	fn       reflect.Value
	in       []reflect.Type
	out      reflect.Type
	failable bool
	erased   func(args []any) (any, error)
}

// Ctor0 records a typed zero-arg constructor.
func Ctor0[T any](fn func() *T) Constructor {
	return Constructor{
		fn:     reflect.ValueOf(fn),
		out:    reflect.TypeFor[*T](),
		erased: func([]any) (any, error) { return fn(), nil },
	}
}

// Ctor1 records a typed single-arg constructor.
func Ctor1[A, T any](fn func(A) *T) Constructor {
	return Constructor{
		fn:  reflect.ValueOf(fn),
		in:  []reflect.Type{reflect.TypeFor[A]()},
		out: reflect.TypeFor[*T](),
		erased: func(args []any) (any, error) {
			return fn(argAs[A](args[0])), nil
		},
	}
}

// argAs yields v as an A. Accepts admits any value assignable to A, so a
// value of a different but assignable type is converted rather than dropped.
func argAs[A any](v any) A {
	if a, ok := v.(A); ok {
		return a
	}
	var zero A
	if v == nil {
		return zero
	}
	return reflect.ValueOf(v).Convert(reflect.TypeFor[A]()).Interface().(A)
}

// Ctor1E records a typed single-arg constructor that can fail.
func Ctor1E[A, T any](fn func(A) (*T, error)) Constructor {
	return Constructor{
		fn:       reflect.ValueOf(fn),
		in:       []reflect.Type{reflect.TypeFor[A]()},
		out:      reflect.TypeFor[*T](),
		failable: true,
		erased: func(args []any) (any, error) {
			v, err := fn(argAs[A](args[0]))
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// Reflect wraps an arbitrary func returning *T or (*T, error).
func Reflect(fn any) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Constructor{}, fmt.Errorf("constructor must be a non-nil func, got %T", fn)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return Constructor{}, fmt.Errorf("variadic constructor %v not supported", ft)
	}
	ct := Constructor{fn: v}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		ct.failable = true
	default:
		return Constructor{}, fmt.Errorf("constructor %v must return *T or (*T, error)", ft)
	}
	ct.out = ft.Out(0)
	if ct.out.Kind() != reflect.Pointer {
		return Constructor{}, fmt.Errorf("constructor %v must return a pointer", ft)
	}
	for i := 0; i < ft.NumIn(); i++ {
		ct.in = append(ct.in, ft.In(i))
	}
	return ct, nil
}

// In returns the parameter types.
func (c Constructor) In() []reflect.Type { return c.in }

// Func is the underlying function value, for callers that bind it once.
func (c Constructor) Func() reflect.Value { return c.fn }

// Erased returns the reflection-free closure, or nil for reflective constructors.
func (c Constructor) Erased() func(args []any) (any, error) { return c.erased }

// Failable reports whether the constructor returns an error.
func (c Constructor) Failable() bool { return c.failable }

// Accepts reports whether args match the parameter list by arity and type.
func (c Constructor) Accepts(args []any) bool {
	if len(args) != len(c.in) {
		return false
	}
	for i, a := range args {
		if !assignable(a, c.in[i]) {
			return false
		}
	}
	return true
}

// Call invokes the constructor through reflection. Args must be Accepted.
func (c Constructor) Call(args []any) (any, error) {
	out := c.fn.Call(Values(args, c.in))
	if c.failable {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
	}
	return out[0].Interface(), nil
}

// Values converts args to reflect values, substituting typed zeros for nils.
func Values(args []any, in []reflect.Type) []reflect.Value {
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			vals[i] = reflect.Zero(in[i])
			continue
		}
		vals[i] = reflect.ValueOf(a)
	}
	return vals
}

func assignable(a any, t reflect.Type) bool {
	if a == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(a).AssignableTo(t)
}

// Option configures a registration.
type Option func(*registration)

type registration struct {
	ctors       []Constructor
	annotations []string
	err         error
}

// WithConstructor adds typed constructors, tried in the given order.
func WithConstructor(ctors ...Constructor) Option {
	return func(r *registration) { r.ctors = append(r.ctors, ctors...) }
}

// WithFunc adds a reflective constructor.
func WithFunc(fn any) Option {
	return func(r *registration) {
		ct, err := Reflect(fn)
		if err != nil {
			r.err = errors.Join(r.err, err)
			return
		}
		r.ctors = append(r.ctors, ct)
	}
}

// WithAnnotations attaches marker annotations to the type.
func WithAnnotations(names ...string) Option {
	return func(r *registration) { r.annotations = append(r.annotations, names...) }
}
