package catalog

import (
	"reflect"
	"sort"
)

// TypeDescriptor is the loaded, read-only view of a registered type.
type TypeDescriptor struct {
	name        string
	typ         reflect.Type
	annotations map[string]struct{}
	ctors       []Constructor
}

func (d *TypeDescriptor) Name() string { return d.name }

// Type is the registered type T.
func (d *TypeDescriptor) Type() reflect.Type { return d.typ }

// InstanceType is *T, the type every constructor produces.
func (d *TypeDescriptor) InstanceType() reflect.Type { return reflect.PointerTo(d.typ) }

func (d *TypeDescriptor) HasAnnotation(name string) bool {
	_, ok := d.annotations[name]
	return ok
}

func (d *TypeDescriptor) Annotations() []string {
	out := make([]string, 0, len(d.annotations))
	for a := range d.annotations {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// AssignableTo reports whether instances satisfy the capability: interface
// capabilities are checked structurally, annotations by presence.
func (d *TypeDescriptor) AssignableTo(c Capability) bool {
	switch c.Kind {
	case CapabilityInterface:
		return c.Type != nil && d.InstanceType().Implements(c.Type)
	case CapabilityAnnotation:
		return d.HasAnnotation(c.Name)
	}
	return false
}

// Constructors returns a copy of the registered constructors in preference order.
func (d *TypeDescriptor) Constructors() []Constructor {
	out := make([]Constructor, len(d.ctors))
	copy(out, d.ctors)
	return out
}

// New builds an instance with the zero-arg constructor.
func (d *TypeDescriptor) New() (any, error) {
	for _, ct := range d.ctors {
		if len(ct.in) == 0 {
			return ct.Call(nil)
		}
	}
	return nil, ErrNoZeroConstructor
}
