// pkg/adapter/adapter.go
package adapter

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/function"
)

// Catalog names of the kind-specific adapter types.
const (
	ServletAdapterType   = "steeze.adapter.Servlet"
	BootstrapAdapterType = "steeze.adapter.Bootstrap"
)

// ErrNotInitialized is returned by adapters built without their entry point.
var ErrNotInitialized = errors.New("adapter: not initialized")

// Adapter is the uniform invocation surface handed to the runtime. Errors
// returned by Invoke come from user code and are passed through as-is.
type Adapter interface {
	Invoke(ctx context.Context, in []byte) ([]byte, error)
}

// Func lets an ordinary function serve as an Adapter.
type Func func(ctx context.Context, in []byte) ([]byte, error)

func (f Func) Invoke(ctx context.Context, in []byte) ([]byte, error) { return f(ctx, in) }

// Plain drives an entry point exposing Apply(in) out / Apply(in) (out, error).
// string and []byte parameters and results pass through raw; anything else
// goes through the codec.
type Plain struct {
	fn       reflect.Value
	in       reflect.Type
	failable bool
	codec    codec.Codec
}

func NewPlain(instance any, c codec.Codec) (*Plain, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return nil, fmt.Errorf("adapter: nil plain function")
	}
	m, ok := function.ApplyShape(rv.Type())
	if !ok {
		return nil, fmt.Errorf("adapter: %v has no %s(in) out method", rv.Type(), function.ApplyMethod)
	}
	if c == nil {
		c = codec.JSON
	}
	return &Plain{
		fn:       rv.Method(m.Index),
		in:       m.Type.In(1),
		failable: m.Type.NumOut() == 2,
		codec:    c,
	}, nil
}

func (p *Plain) Invoke(_ context.Context, in []byte) ([]byte, error) {
	arg, err := p.decode(in)
	if err != nil {
		return nil, err
	}
	out := p.fn.Call([]reflect.Value{arg})
	if p.failable {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
	}
	return p.encode(out[0])
}

func (p *Plain) decode(in []byte) (reflect.Value, error) {
	switch {
	case p.in.Kind() == reflect.String:
		return reflect.ValueOf(string(in)).Convert(p.in), nil
	case isBytes(p.in):
		return reflect.ValueOf(in).Convert(p.in), nil
	}
	dst := reflect.New(p.in)
	if len(in) > 0 {
		if err := p.codec.Unmarshal(in, dst.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("adapter: decode %v: %w", p.in, err)
		}
	}
	return dst.Elem(), nil
}

func (p *Plain) encode(v reflect.Value) ([]byte, error) {
	switch {
	case v.Kind() == reflect.String:
		return []byte(v.String()), nil
	case isBytes(v.Type()):
		return v.Bytes(), nil
	}
	raw, err := p.codec.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("adapter: encode %v: %w", v.Type(), err)
	}
	return raw, nil
}

func isBytes(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// Platform drives a function.Handler.
type Platform struct {
	h function.Handler
}

func NewPlatform(instance any) (*Platform, error) {
	h, ok := instance.(function.Handler)
	if !ok {
		return nil, fmt.Errorf("adapter: %T does not implement function.Handler", instance)
	}
	return &Platform{h: h}, nil
}

func (p *Platform) Invoke(ctx context.Context, in []byte) ([]byte, error) {
	return p.h.HandleRequest(ctx, in)
}
