package construct

import (
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
)

// Factory is a synthesized single-purpose constructor closure.
type Factory func(args []any) (any, error)

// synthesize adapts a handle into a Factory. Typed constructors already carry
// an erased closure, so the reflective path is only a fallback.
func synthesize(h *Handle) Factory {
	if e := h.ctor.Erased(); e != nil {
		return Factory(e)
	}
	return h.Invoke
}

// closure resolves the handle, synthesizes a Factory once, and calls only the
// Factory afterwards. Highest one-time cost, lowest steady-state cost.
type closure struct {
	cache     *handleCache[Factory]
	onResolve ResolveHook
}

func newClosure(o options) *closure {
	return &closure{cache: newHandleCache[Factory](), onResolve: o.onResolve}
}

func NewClosure() Strategy { return newClosure(options{}) }

func (c *closure) Kind() Kind { return Closure }

func (c *closure) Resolutions() int64 { return c.cache.resolutions.Load() }

func (c *closure) Instantiate(target *catalog.TypeDescriptor, args ...any) (any, error) {
	if target == nil {
		_, err := find(Closure, nil, args)
		return nil, err
	}
	f, err := c.cache.get(keyFor(target, args), func() (Factory, error) {
		ct, err := find(Closure, target, args)
		if err != nil {
			return nil, err
		}
		if c.onResolve != nil {
			c.onResolve(Closure, target.Name())
		}
		return synthesize(bindHandle(ct, target)), nil
	})
	if err != nil {
		return nil, err
	}
	return call(Closure, target, args, f)
}
