package adapter_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/stretchr/testify/require"
)

type echo struct{}

func (echo) Apply(s string) string { return s }

type order struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

type receipt struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

type pricer struct{ unit int }

func (p *pricer) Apply(o order) (receipt, error) {
	if o.Qty < 0 {
		return receipt{}, errors.New("negative quantity")
	}
	return receipt{ID: o.ID, Total: o.Qty * p.unit}, nil
}

type shout struct{}

func (shout) Apply(b []byte) []byte { return []byte(strings.ToUpper(string(b))) }

type platformFn struct{}

func (platformFn) HandleRequest(_ context.Context, event []byte) ([]byte, error) {
	return append([]byte("platform:"), event...), nil
}

/*
   Plain
*/

func TestPlain_RawString(t *testing.T) {
	t.Parallel()

	p, err := adapter.NewPlain(&echo{}, nil)
	require.NoError(t, err)

	out, err := p.Invoke(context.Background(), []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
}

func TestPlain_RawBytes(t *testing.T) {
	t.Parallel()

	p, err := adapter.NewPlain(shout{}, codec.JSON)
	require.NoError(t, err)

	out, err := p.Invoke(context.Background(), []byte("quiet"))
	require.NoError(t, err)
	require.Equal(t, "QUIET", string(out))
}

func TestPlain_StructuredPayload(t *testing.T) {
	t.Parallel()

	p, err := adapter.NewPlain(&pricer{unit: 3}, codec.JSONStrict)
	require.NoError(t, err)

	out, err := p.Invoke(context.Background(), []byte(`{"id":"a1","qty":4}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"a1","total":12}`, string(out))

	_, err = p.Invoke(context.Background(), []byte(`{"id":"a1","qty":-1}`))
	require.EqualError(t, err, "negative quantity", "user errors pass through unchanged")

	_, err = p.Invoke(context.Background(), []byte(`{"id":"a1","bogus":true}`))
	require.Error(t, err, "strict codec rejects unknown fields")
}

func TestPlain_LenientCodecIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	p, err := adapter.NewPlain(&pricer{unit: 1}, codec.JSON)
	require.NoError(t, err)

	out, err := p.Invoke(context.Background(), []byte(`{"id":"b","qty":2,"note":"x"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"b","total":2}`, string(out))
}

func TestNewPlain_RejectsOtherShapes(t *testing.T) {
	t.Parallel()

	_, err := adapter.NewPlain(nil, nil)
	require.Error(t, err)
	_, err = adapter.NewPlain(platformFn{}, nil)
	require.Error(t, err)
}

/*
   Platform
*/

func TestPlatform(t *testing.T) {
	t.Parallel()

	p, err := adapter.NewPlatform(platformFn{})
	require.NoError(t, err)
	out, err := p.Invoke(context.Background(), []byte("ev"))
	require.NoError(t, err)
	require.Equal(t, "platform:ev", string(out))

	_, err = adapter.NewPlatform(echo{})
	require.Error(t, err)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var a adapter.Adapter = adapter.Func(func(_ context.Context, in []byte) ([]byte, error) {
		return in, nil
	})
	out, err := a.Invoke(context.Background(), []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "x", string(out))
}
