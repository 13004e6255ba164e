package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/auth"
)

// Collect records request counts, latency and in-flight requests. Auth state
// comes from the request context, so Collect is installed after the auth
// middleware.
func Collect(ca *auth.Middleware) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSkipPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			inFlight.Inc()
			defer func() {
				inFlight.Dec()
				record(r, ww.Status(), ca != nil && ca.IsAuthenticated(r.Context()), time.Since(start))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func record(r *http.Request, status int, authed bool, took time.Duration) {
	if status == 0 {
		status = http.StatusOK
	}
	code := strconv.Itoa(status)
	totalHttpRequestsByAuth.WithLabelValues(strconv.FormatBool(authed)).Inc()
	totalHttpRequestsToUri.WithLabelValues(code, normalizePath(r), r.Method).Inc()
	totalHttpRequests.WithLabelValues(code, r.Method).Inc()
	responseTime.Observe(took.Seconds())
}
