package core

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// withDeadline bounds a single invocation. The adapter sees the deadline on
// its context; user code that ignores it still runs to completion.
func withDeadline(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	if d <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

// invokeStatus maps an adapter error to the status returned to the platform.
func invokeStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	}
	return http.StatusInternalServerError
}
