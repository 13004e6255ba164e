package construct

import "github.com/joeydtaylor/steeze-runtime/pkg/catalog"

// direct looks the constructor up on every call and invokes it reflectively.
// No precomputation, highest per-call cost.
type direct struct{}

func NewDirect() Strategy { return direct{} }

func (direct) Kind() Kind { return Direct }

func (direct) Instantiate(target *catalog.TypeDescriptor, args ...any) (any, error) {
	ct, err := find(Direct, target, args)
	if err != nil {
		return nil, err
	}
	return call(Direct, target, args, ct.Call)
}
