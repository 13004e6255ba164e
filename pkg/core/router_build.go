package core

import (
	"errors"
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
	hmetrics "github.com/joeydtaylor/steeze-runtime/pkg/middleware/metrics"
	"go.uber.org/zap"
)

// InvokePath is where the platform delivers events.
const InvokePath = "/invoke"

func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	zl := d.Log
	if zl == nil {
		zl = zap.NewNop()
	}

	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))

	if d.Auth != nil {
		r.Use(d.Auth.Middleware())
	}
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware(d.Auth))
	}
	// metrics collector that references auth state without copying it
	r.Use(hmetrics.Collect(d.Auth))

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	h := invokeHandler(d.Adapter, cfg.Server.MaxBodyBytes, zl)
	h = withDeadline(h, time.Duration(cfg.Server.TimeoutMS)*time.Millisecond)
	if d.Auth != nil {
		h = d.Auth.Require(h)
	}
	r.Post(InvokePath, h)
	return r.Mux()
}

func invokeHandler(a adapter.Adapter, limit int64, zl *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a == nil {
			http.Error(w, "function not resolved", http.StatusServiceUnavailable)
			return
		}
		var src io.Reader = r.Body
		if limit > 0 {
			src = http.MaxBytesReader(w, r.Body, limit)
		}
		body, err := io.ReadAll(src)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := a.Invoke(r.Context(), body)
		if err != nil {
			zl.Warn("invocation failed",
				zap.String("requestId", chimd.GetReqID(r.Context())),
				zap.Error(err),
			)
			http.Error(w, err.Error(), invokeStatus(err))
			return
		}
		writeBody(w, out, http.StatusOK)
	}
}
