// pkg/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrTypeNotFound is the low-level "cannot load" signal for a type name.
	ErrTypeNotFound = errors.New("catalog: type not found")
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("catalog: duplicate name")
)

// CapabilityKind separates interface contracts from marker annotations.
type CapabilityKind int

const (
	CapabilityInterface CapabilityKind = iota
	CapabilityAnnotation
)

func (k CapabilityKind) String() string {
	if k == CapabilityAnnotation {
		return "annotation"
	}
	return "interface"
}

// Capability is an environment-provided contract a type may or may not satisfy.
// Type is set only for interface capabilities.
type Capability struct {
	Name string
	Kind CapabilityKind
	Type reflect.Type
}

// Catalog maps fully-qualified names to loadable types and capabilities.
// Registration normally happens in init(); lookups are read-locked only.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*TypeDescriptor
	caps  map[string]Capability
}

func New() *Catalog {
	return &Catalog{
		types: make(map[string]*TypeDescriptor),
		caps:  make(map[string]Capability),
	}
}

var defaultCatalog = New()

// Default returns the process-wide catalog user packages register into.
func Default() *Catalog { return defaultCatalog }

// Register binds T to a symbolic name. A zero-arg constructor returning new(T)
// is added unless the options already supply one.
func Register[T any](c *Catalog, name string, opts ...Option) error {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return fmt.Errorf("catalog: catalog and type name required")
	}
	typ := reflect.TypeFor[T]()

	var reg registration
	for _, o := range opts {
		o(&reg)
	}
	if reg.err != nil {
		return fmt.Errorf("catalog: register %q: %w", name, reg.err)
	}

	ctors := make([]Constructor, 0, len(reg.ctors)+1)
	hasZero := false
	for _, ct := range reg.ctors {
		if ct.out != reflect.PointerTo(typ) {
			return fmt.Errorf("catalog: register %q: constructor returns %v, want %v", name, ct.out, reflect.PointerTo(typ))
		}
		if len(ct.in) == 0 {
			hasZero = true
		}
		ctors = append(ctors, ct)
	}
	if !hasZero {
		ctors = append(ctors, Ctor0(func() *T { return new(T) }))
	}

	ann := make(map[string]struct{}, len(reg.annotations))
	for _, a := range reg.annotations {
		if a = strings.TrimSpace(a); a != "" {
			ann[a] = struct{}{}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.types[name]; ok {
		return fmt.Errorf("%w: type %q", ErrDuplicate, name)
	}
	c.types[name] = &TypeDescriptor{
		name:        name,
		typ:         typ,
		annotations: ann,
		ctors:       ctors,
	}
	return nil
}

func MustRegister[T any](c *Catalog, name string, opts ...Option) {
	if err := Register[T](c, name, opts...); err != nil {
		panic(err)
	}
}

// RegisterInterface makes the interface I available as a named capability.
func RegisterInterface[I any](c *Catalog, name string) error {
	t := reflect.TypeFor[I]()
	if t.Kind() != reflect.Interface {
		return fmt.Errorf("catalog: capability %q: %v is not an interface", name, t)
	}
	return c.addCapability(Capability{Name: name, Kind: CapabilityInterface, Type: t})
}

// RegisterAnnotation makes a marker annotation available as a named capability.
func RegisterAnnotation(c *Catalog, name string) error {
	return c.addCapability(Capability{Name: name, Kind: CapabilityAnnotation})
}

func (c *Catalog) addCapability(capb Capability) error {
	capb.Name = strings.TrimSpace(capb.Name)
	if capb.Name == "" {
		return fmt.Errorf("catalog: capability name required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.caps[capb.Name]; ok {
		return fmt.Errorf("%w: capability %q", ErrDuplicate, capb.Name)
	}
	c.caps[capb.Name] = capb
	return nil
}

// Load resolves a registered type by name.
func (c *Catalog) Load(name string) (*TypeDescriptor, error) {
	c.mu.RLock()
	d, ok := c.types[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return d, nil
}

// LookupCapability reports whether the environment provides a capability.
// Absence is a normal outcome, not an error.
func (c *Catalog) LookupCapability(name string) (Capability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	capb, ok := c.caps[name]
	return capb, ok
}

// InterfacesOf lists the registered interface capabilities d satisfies.
func (c *Catalog) InterfacesOf(d *TypeDescriptor) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for n, capb := range c.caps {
		if capb.Kind == CapabilityInterface && d.AssignableTo(capb) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns every registered type name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.types))
	for n := range c.types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
