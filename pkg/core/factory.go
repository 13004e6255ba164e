package core

import (
	"fmt"

	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/construct"
)

// Factory builds the kind-specific adapter for a classified entry point.
type Factory struct {
	cat   *catalog.Catalog
	codec codec.Codec
}

func NewFactory(c *catalog.Catalog, cd codec.Codec) *Factory {
	if cd == nil {
		cd = codec.JSONStrict
	}
	return &Factory{cat: c, codec: cd}
}

// Construct instantiates through s. Plain and platform entry points are
// instantiated directly and wrapped; servlet and web-bootstrap entry points
// are handed, as a descriptor, to the adapter type registered for their kind.
func (f *Factory) Construct(kind FunctionKind, d *catalog.TypeDescriptor, s construct.Strategy) (adapter.Adapter, error) {
	if d == nil {
		return nil, &Error{Kind: KindConstruction, Function: kind, Detail: "nil type descriptor"}
	}
	switch kind {
	case PlainFunction:
		inst, err := s.Instantiate(d)
		if err != nil {
			return nil, constructionError(kind, d, d.Name(), err)
		}
		a, err := adapter.NewPlain(inst, f.codec)
		if err != nil {
			return nil, constructionError(kind, d, d.Name(), err)
		}
		return a, nil

	case PlatformFunction:
		inst, err := s.Instantiate(d)
		if err != nil {
			return nil, constructionError(kind, d, d.Name(), err)
		}
		a, err := adapter.NewPlatform(inst)
		if err != nil {
			return nil, constructionError(kind, d, d.Name(), err)
		}
		return a, nil

	case ServletStyle:
		return f.viaAdapterType(kind, adapter.ServletAdapterType, d, s)

	case WebBootstrap:
		return f.viaAdapterType(kind, adapter.BootstrapAdapterType, d, s)
	}
	return nil, &Error{Kind: KindConstruction, EntryPoint: d.Name(), Detail: fmt.Sprintf("unknown function kind %d", int(kind))}
}

func (f *Factory) viaAdapterType(kind FunctionKind, typeName string, d *catalog.TypeDescriptor, s construct.Strategy) (adapter.Adapter, error) {
	at, err := f.cat.Load(typeName)
	if err != nil {
		return nil, &Error{
			Kind:       KindConstruction,
			EntryPoint: d.Name(),
			Function:   kind,
			Target:     typeName,
			Detail:     "adapter type is not installed",
			Cause:      err,
		}
	}
	inst, err := s.Instantiate(at, d)
	if err != nil {
		return nil, constructionError(kind, d, typeName, err)
	}
	a, ok := inst.(adapter.Adapter)
	if !ok {
		return nil, &Error{
			Kind:       KindConstruction,
			EntryPoint: d.Name(),
			Function:   kind,
			Target:     typeName,
			Detail:     fmt.Sprintf("%T is not an adapter", inst),
		}
	}
	return a, nil
}

func constructionError(kind FunctionKind, d *catalog.TypeDescriptor, target string, cause error) *Error {
	return &Error{Kind: KindConstruction, EntryPoint: d.Name(), Function: kind, Target: target, Cause: cause}
}
