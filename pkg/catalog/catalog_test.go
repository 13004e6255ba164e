package catalog_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/stretchr/testify/require"
)

type widget struct{ label string }

type named interface{ Name() string }

func (w *widget) Name() string { return w.label }

type gadget struct{}

/*
   Registration
*/

func TestRegister_LoadAndDefaultConstructor(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	require.NoError(t, catalog.Register[widget](c, "test.Widget"))

	d, err := c.Load("test.Widget")
	require.NoError(t, err)
	require.Equal(t, "test.Widget", d.Name())
	require.Equal(t, "*catalog_test.widget", d.InstanceType().String())

	v, err := d.New()
	require.NoError(t, err)
	require.IsType(t, &widget{}, v)
	require.Len(t, d.Constructors(), 1)
}

func TestRegister_KeepsExplicitZeroConstructor(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	require.NoError(t, catalog.Register[widget](c, "w",
		catalog.WithConstructor(catalog.Ctor0(func() *widget { return &widget{label: "zero"} })),
	))

	d, err := c.Load("w")
	require.NoError(t, err)
	require.Len(t, d.Constructors(), 1)

	v, err := d.New()
	require.NoError(t, err)
	require.Equal(t, "zero", v.(*widget).label)
}

func TestRegister_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(c *catalog.Catalog) error
	}{
		{
			name: "empty name",
			run:  func(c *catalog.Catalog) error { return catalog.Register[widget](c, "  ") },
		},
		{
			name: "constructor for another type",
			run: func(c *catalog.Catalog) error {
				return catalog.Register[widget](c, "w",
					catalog.WithConstructor(catalog.Ctor0(func() *gadget { return &gadget{} })))
			},
		},
		{
			name: "variadic reflective constructor",
			run: func(c *catalog.Catalog) error {
				return catalog.Register[widget](c, "w",
					catalog.WithFunc(func(xs ...string) *widget { return &widget{} }))
			},
		},
		{
			name: "non-pointer reflective constructor",
			run: func(c *catalog.Catalog) error {
				return catalog.Register[widget](c, "w",
					catalog.WithFunc(func() widget { return widget{} }))
			},
		},
		{
			name: "second result is not error",
			run: func(c *catalog.Catalog) error {
				return catalog.Register[widget](c, "w",
					catalog.WithFunc(func() (*widget, int) { return nil, 0 }))
			},
		},
		{
			name: "not a func",
			run: func(c *catalog.Catalog) error {
				return catalog.Register[widget](c, "w", catalog.WithFunc(42))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.run(catalog.New()))
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	require.NoError(t, catalog.Register[widget](c, "w"))
	err := catalog.Register[gadget](c, "w")
	require.ErrorIs(t, err, catalog.ErrDuplicate)
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	_, err := catalog.New().Load("missing.Type")
	require.ErrorIs(t, err, catalog.ErrTypeNotFound)
}

/*
   Capabilities
*/

func TestCapabilities(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	require.NoError(t, catalog.Register[widget](c, "w", catalog.WithAnnotations("ann.B", "ann.A", " ")))
	require.NoError(t, catalog.Register[gadget](c, "g"))

	_, ok := c.LookupCapability("named")
	require.False(t, ok, "absent capability is not an error")

	require.NoError(t, catalog.RegisterInterface[named](c, "named"))
	require.NoError(t, catalog.RegisterAnnotation(c, "ann.A"))
	require.ErrorIs(t, catalog.RegisterAnnotation(c, "ann.A"), catalog.ErrDuplicate)
	require.Error(t, catalog.RegisterInterface[widget](c, "not-an-interface"))

	w, _ := c.Load("w")
	g, _ := c.Load("g")

	capb, ok := c.LookupCapability("named")
	require.True(t, ok)
	require.Equal(t, catalog.CapabilityInterface, capb.Kind)
	require.True(t, w.AssignableTo(capb))
	require.False(t, g.AssignableTo(capb))

	ann, ok := c.LookupCapability("ann.A")
	require.True(t, ok)
	require.Equal(t, "annotation", ann.Kind.String())
	require.True(t, w.AssignableTo(ann))
	require.False(t, g.AssignableTo(ann))

	require.Equal(t, []string{"ann.A", "ann.B"}, w.Annotations())
	require.Equal(t, []string{"named"}, c.InterfacesOf(w))
	require.Empty(t, c.InterfacesOf(g))
	require.Equal(t, []string{"g", "w"}, c.Names())
}

/*
   Constructors
*/

func TestConstructor_AcceptsAndCall(t *testing.T) {
	t.Parallel()

	ct := catalog.Ctor1(func(s string) *widget { return &widget{label: s} })
	require.True(t, ct.Accepts([]any{"x"}))
	require.False(t, ct.Accepts([]any{1}))
	require.False(t, ct.Accepts(nil))
	require.False(t, ct.Accepts([]any{nil}), "nil does not fit a string parameter")

	v, err := ct.Call([]any{"hi"})
	require.NoError(t, err)
	require.Equal(t, "hi", v.(*widget).label)

	v, err = ct.Erased()([]any{"erased"})
	require.NoError(t, err)
	require.Equal(t, "erased", v.(*widget).label)
}

// The erased closure must see the same argument the reflective call does.
func TestConstructor_ErasedConvertsAssignableArgument(t *testing.T) {
	t.Parallel()

	ct := catalog.Ctor1(func(b []byte) *widget { return &widget{label: string(b)} })
	args := []any{json.RawMessage(`{"a":1}`)}
	require.True(t, ct.Accepts(args))

	viaCall, err := ct.Call(args)
	require.NoError(t, err)
	viaErased, err := ct.Erased()(args)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, viaErased.(*widget).label)
	require.Equal(t, viaCall.(*widget).label, viaErased.(*widget).label)

	cte := catalog.Ctor1E(func(b []byte) (*widget, error) { return &widget{label: string(b)}, nil })
	v, err := cte.Erased()(args)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, v.(*widget).label)
}

func TestConstructor_NilForPointerParameter(t *testing.T) {
	t.Parallel()

	ct := catalog.Ctor1(func(p *gadget) *widget { return &widget{label: fmt.Sprint(p == nil)} })
	require.True(t, ct.Accepts([]any{nil}))

	v, err := ct.Call([]any{nil})
	require.NoError(t, err)
	require.Equal(t, "true", v.(*widget).label)
}

func TestConstructor_FailableAndReflective(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ct := catalog.Ctor1E(func(fail bool) (*widget, error) {
		if fail {
			return nil, boom
		}
		return &widget{}, nil
	})
	require.True(t, ct.Failable())

	_, err := ct.Call([]any{true})
	require.ErrorIs(t, err, boom)
	_, err = ct.Erased()([]any{true})
	require.ErrorIs(t, err, boom)

	rc, err := catalog.Reflect(func(a, b string) (*widget, error) { return &widget{label: a + b}, nil })
	require.NoError(t, err)
	require.Nil(t, rc.Erased())
	require.Len(t, rc.In(), 2)

	v, err := rc.Call([]any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "ab", v.(*widget).label)
}

func TestDescriptor_NewPropagatesConstructorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := catalog.New()
	require.NoError(t, catalog.Register[widget](c, "w",
		catalog.WithFunc(func() (*widget, error) { return nil, boom }),
	))
	d, _ := c.Load("w")
	_, err := d.New()
	require.ErrorIs(t, err, boom)
}
