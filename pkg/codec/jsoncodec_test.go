package codec_test

import (
	"testing"

	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestByName(t *testing.T) {
	t.Parallel()

	c, ok := codec.ByName("")
	require.True(t, ok)
	require.Equal(t, codec.JSON, c)

	c, ok = codec.ByName(" JSON-Strict ")
	require.True(t, ok)
	require.Equal(t, codec.JSONStrict, c)

	_, ok = codec.ByName("msgpack")
	require.False(t, ok)
}

func TestJSON_Strictness(t *testing.T) {
	t.Parallel()

	in := []byte(`{"name":"a","extra":true}`)

	var p payload
	require.NoError(t, codec.JSON.Unmarshal(in, &p))
	require.Equal(t, "a", p.Name)

	require.Error(t, codec.JSONStrict.Unmarshal(in, &payload{}))
	require.Error(t, codec.JSONStrict.Unmarshal([]byte(`{"name":"a"} {}`), &payload{}))
	require.NoError(t, codec.JSONStrict.Unmarshal([]byte(`{"name":"a"}`), &payload{}))
}

func TestJSON_MarshalKeepsHTML(t *testing.T) {
	t.Parallel()

	out, err := codec.JSON.Marshal(payload{Name: "<b>&</b>"})
	require.NoError(t, err)
	require.Equal(t, `{"name":"<b>&</b>"}`, string(out))
	require.Equal(t, "application/json", codec.JSON.ContentType())
}
