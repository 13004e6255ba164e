package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/construct"
	hmetrics "github.com/joeydtaylor/steeze-runtime/pkg/middleware/metrics"
	"go.uber.org/zap"
)

// Engine resolves an entry point into an adapter: classify, then construct.
// It keeps no state of its own beyond what the strategy caches.
type Engine struct {
	classifier *Classifier
	factory    *Factory
	strategy   construct.Strategy
	log        *zap.Logger
}

type EngineOption func(*engineOptions)

type engineOptions struct {
	codec codec.Codec
}

// WithCodec sets the codec plain functions use for structured payloads.
func WithCodec(c codec.Codec) EngineOption { return func(o *engineOptions) { o.codec = c } }

func NewEngine(c *catalog.Catalog, s construct.Strategy, log *zap.Logger, opts ...EngineOption) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	var o engineOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Engine{
		classifier: NewClassifier(c, log),
		factory:    NewFactory(c, o.codec),
		strategy:   s,
		log:        log,
	}
}

// Classify exposes the classification step on its own.
func (e *Engine) Classify(ep EntryPoint) (FunctionKind, *catalog.TypeDescriptor, error) {
	return e.classifier.Classify(ep)
}

// Resolved is the outcome of a successful cold start.
type Resolved struct {
	ColdStartID string
	Kind        FunctionKind
	Adapter     adapter.Adapter
}

// Resolve runs one cold start. Any error is terminal for the execution
// environment; nothing is retried.
func (e *Engine) Resolve(ep EntryPoint) (Resolved, error) {
	id := uuid.NewString()
	start := time.Now()
	log := e.log.With(
		zap.String("coldStartId", id),
		zap.String("entryPoint", ep.Name()),
		zap.String("strategy", string(e.strategy.Kind())),
	)

	kind, d, err := e.classifier.Classify(ep)
	if err != nil {
		e.fail(log, err)
		return Resolved{}, err
	}
	log.Debug("entry point classified", zap.Stringer("kind", kind))

	a, err := e.factory.Construct(kind, d, e.strategy)
	if err != nil {
		e.fail(log, err)
		return Resolved{}, err
	}

	lat := time.Since(start)
	hmetrics.ObserveResolution(kind.String(), string(e.strategy.Kind()), lat)
	log.Info("entry point resolved",
		zap.Stringer("kind", kind),
		zap.Duration("lat", lat),
	)
	return Resolved{ColdStartID: id, Kind: kind, Adapter: instrumented(kind, a)}, nil
}

func (e *Engine) fail(log *zap.Logger, err error) {
	k := KindOf(err)
	hmetrics.ObserveFailure(string(k))
	log.Error("cold start failed", zap.String("errorKind", string(k)), zap.Error(err))
}

// instrumented counts invocations by kind and outcome. Errors from user code
// are returned unchanged.
func instrumented(kind FunctionKind, a adapter.Adapter) adapter.Adapter {
	label := kind.String()
	return adapter.Func(func(ctx context.Context, in []byte) ([]byte, error) {
		out, err := a.Invoke(ctx, in)
		hmetrics.ObserveInvocation(label, err)
		return out, err
	})
}
