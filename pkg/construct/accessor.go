package construct

import (
	"reflect"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
)

// Handle is a constructor bound once to an exact signature.
type Handle struct {
	Target   string
	ctor     catalog.Constructor
	fn       reflect.Value
	in       []reflect.Type
	failable bool
}

func bindHandle(ct catalog.Constructor, target *catalog.TypeDescriptor) *Handle {
	return &Handle{
		Target:   target.Name(),
		ctor:     ct,
		fn:       ct.Func(),
		in:       ct.In(),
		failable: ct.Failable(),
	}
}

// Invoke materializes one instance without any lookup.
func (h *Handle) Invoke(args []any) (any, error) {
	out := h.fn.Call(catalog.Values(args, h.in))
	if h.failable {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
	}
	return out[0].Interface(), nil
}

// accessor resolves a Handle once per (target, signature) and calls it on
// every construction.
type accessor struct {
	cache     *handleCache[*Handle]
	onResolve ResolveHook
}

func newAccessor(o options) *accessor {
	return &accessor{cache: newHandleCache[*Handle](), onResolve: o.onResolve}
}

func NewAccessor() Strategy { return newAccessor(options{}) }

func (a *accessor) Kind() Kind { return Accessor }

func (a *accessor) Resolutions() int64 { return a.cache.resolutions.Load() }

func (a *accessor) Instantiate(target *catalog.TypeDescriptor, args ...any) (any, error) {
	if target == nil {
		_, err := find(Accessor, nil, args)
		return nil, err
	}
	h, err := a.cache.get(keyFor(target, args), func() (*Handle, error) {
		ct, err := find(Accessor, target, args)
		if err != nil {
			return nil, err
		}
		if a.onResolve != nil {
			a.onResolve(Accessor, target.Name())
		}
		return bindHandle(ct, target), nil
	})
	if err != nil {
		return nil, err
	}
	return call(Accessor, target, args, h.Invoke)
}
