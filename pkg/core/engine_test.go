package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/construct"
	"github.com/joeydtaylor/steeze-runtime/pkg/core"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustStrategy(t *testing.T, k construct.Kind) construct.Strategy {
	t.Helper()
	s, err := construct.New(k)
	require.NoError(t, err)
	return s
}

func invoke(t *testing.T, a adapter.Adapter, in []byte) string {
	t.Helper()
	out, err := a.Invoke(context.Background(), in)
	require.NoError(t, err)
	return string(out)
}

func proxyBody(t *testing.T, out string) string {
	t.Helper()
	var res adapter.ProxyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res.Body
}

/*
   Resolution
*/

// The echo function resolves as plain and returns its input unchanged.
func TestResolve_PlainEchoDirect(t *testing.T) {
	t.Parallel()

	e := core.NewEngine(fullCatalog(t), mustStrategy(t, construct.Direct), nil)

	kind, _, err := e.Classify(echoName)
	require.NoError(t, err)
	require.Equal(t, core.PlainFunction, kind)

	res, err := e.Resolve(echoName)
	require.NoError(t, err)
	require.Equal(t, core.PlainFunction, res.Kind)
	require.NotEmpty(t, res.ColdStartID)
	require.Equal(t, "ping", invoke(t, res.Adapter, []byte("ping")))
}

// Every strategy produces the same observable behaviour for every kind.
func TestResolve_StrategyEquivalence(t *testing.T) {
	t.Parallel()

	event := []byte(`{"method":"GET","path":"/"}`)
	tests := []struct {
		entry string
		kind  core.FunctionKind
		in    []byte
		check func(t *testing.T, out string)
	}{
		{echoName, core.PlainFunction, []byte("same"), func(t *testing.T, out string) { require.Equal(t, "same", out) }},
		{hybridName, core.PlainFunction, []byte("x"), func(t *testing.T, out string) { require.Equal(t, "plain:x", out) }},
		{lambdaName, core.PlatformFunction, []byte("ev"), func(t *testing.T, out string) { require.Equal(t, "ev", out) }},
		{servletName, core.ServletStyle, event, func(t *testing.T, out string) { require.Equal(t, "servlet", proxyBody(t, out)) }},
		{webName, core.WebBootstrap, event, func(t *testing.T, out string) { require.Equal(t, "web", proxyBody(t, out)) }},
	}

	c := fullCatalog(t)
	for _, k := range []construct.Kind{construct.Direct, construct.Accessor, construct.Closure} {
		e := core.NewEngine(c, mustStrategy(t, k), nil)
		for _, tt := range tests {
			t.Run(string(k)+"/"+tt.entry, func(t *testing.T) {
				res, err := e.Resolve(core.EntryPoint(tt.entry))
				require.NoError(t, err)
				require.Equal(t, tt.kind, res.Kind)
				tt.check(t, invoke(t, res.Adapter, tt.in))
			})
		}
	}
}

// Repeated cold starts of one entry point
// resolve the constructor handle once.
func TestResolve_AccessorResolvesOncePerType(t *testing.T) {
	t.Parallel()

	s := mustStrategy(t, construct.Accessor)
	e := core.NewEngine(fullCatalog(t), s, nil)

	for range 5 {
		_, err := e.Resolve(echoName)
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, s.(construct.Cached).Resolutions())

	_, err := e.Resolve(lambdaName)
	require.NoError(t, err)
	require.EqualValues(t, 2, s.(construct.Cached).Resolutions())
}

func TestResolve_DistinctColdStartIDs(t *testing.T) {
	t.Parallel()

	e := core.NewEngine(fullCatalog(t), mustStrategy(t, construct.Closure), nil)
	a, err := e.Resolve(echoName)
	require.NoError(t, err)
	b, err := e.Resolve(echoName)
	require.NoError(t, err)
	require.NotEqual(t, a.ColdStartID, b.ColdStartID)
}

func TestResolve_CodecOption(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	require.NoError(t, catalog.Register[doubler](c, "test.Doubler"))

	lenient := core.NewEngine(c, mustStrategy(t, construct.Direct), nil, core.WithCodec(codec.JSON))
	res, err := lenient.Resolve("test.Doubler")
	require.NoError(t, err)
	require.Equal(t, `{"n":4}`, invoke(t, res.Adapter, []byte(`{"n":2,"extra":1}`)))

	strict := core.NewEngine(c, mustStrategy(t, construct.Direct), nil)
	res, err = strict.Resolve("test.Doubler")
	require.NoError(t, err)
	_, err = res.Adapter.Invoke(context.Background(), []byte(`{"n":2,"extra":1}`))
	require.Error(t, err, "json-strict is the default")
}

type doubler struct{}

type number struct {
	N int `json:"n"`
}

func (doubler) Apply(n number) number { return number{N: n.N * 2} }

/*
   Failures
*/

func TestResolve_ConstructionErrorWhenAdapterTypeMissing(t *testing.T) {
	t.Parallel()

	c := userCatalog(t)
	require.NoError(t, adapter.InstallServletCapability(c))
	require.NoError(t, adapter.InstallWebCapability(c))

	for _, k := range []construct.Kind{construct.Direct, construct.Accessor, construct.Closure} {
		e := core.NewEngine(c, mustStrategy(t, k), nil)

		_, err := e.Resolve(servletName)
		require.ErrorIs(t, err, core.ErrConstruction, k)
		require.NotErrorIs(t, err, core.ErrUnsupportedHandlerKind)
		var ce *core.Error
		require.ErrorAs(t, err, &ce)
		require.Equal(t, adapter.ServletAdapterType, ce.Target)
		require.Equal(t, core.ServletStyle, ce.Function)

		_, err = e.Resolve(webName)
		require.ErrorIs(t, err, core.ErrConstruction, k)
		require.ErrorAs(t, err, &ce)
		require.Equal(t, adapter.BootstrapAdapterType, ce.Target)
	}
}

type refuses struct{}

func (refuses) Apply(s string) string { return s }

func TestResolve_ConstructionErrorFromUserConstructor(t *testing.T) {
	t.Parallel()

	boom := errors.New("no config")
	c := catalog.New()
	require.NoError(t, catalog.Register[refuses](c, "test.Refuses",
		catalog.WithFunc(func() (*refuses, error) { return nil, boom })))

	e := core.NewEngine(c, mustStrategy(t, construct.Closure), nil)
	_, err := e.Resolve("test.Refuses")
	require.ErrorIs(t, err, core.ErrConstruction)
	require.ErrorIs(t, err, construct.ErrConstructorFailed)
	require.ErrorIs(t, err, boom)
}

func TestResolve_ErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	e := core.NewEngine(fullCatalog(t), mustStrategy(t, construct.Accessor), nil)

	_, err := e.Resolve("nope")
	require.Equal(t, core.KindEntryPointNotFound, core.KindOf(err))

	_, err = e.Resolve(unrelatedName)
	require.Equal(t, core.KindUnsupportedHandler, core.KindOf(err))

	require.Equal(t, core.ErrorKind(""), core.KindOf(errors.New("plain")))
	require.Equal(t, core.ErrorKind(""), core.KindOf(nil))
}

/*
   Logging
*/

func TestResolve_Logs(t *testing.T) {
	t.Parallel()

	zc, logs := observer.New(zapcore.DebugLevel)
	e := core.NewEngine(fullCatalog(t), mustStrategy(t, construct.Accessor), zap.New(zc))

	res, err := e.Resolve(echoName)
	require.NoError(t, err)
	_, err = e.Resolve(unrelatedName)
	require.Error(t, err)

	ok := logs.FilterMessage("entry point resolved").All()
	require.Len(t, ok, 1)
	fields := ok[0].ContextMap()
	require.Equal(t, res.ColdStartID, fields["coldStartId"])
	require.Equal(t, echoName, fields["entryPoint"])
	require.Equal(t, "accessor", fields["strategy"])
	require.Equal(t, "plain", fields["kind"])

	failed := logs.FilterMessage("cold start failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	require.Equal(t, string(core.KindUnsupportedHandler), failed[0].ContextMap()["errorKind"])

	require.Equal(t, 1, logs.FilterMessage("no function shape matched").Len())
}
