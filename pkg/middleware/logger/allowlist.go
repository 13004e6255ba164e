package logger

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// Invocation payloads are user data, so request bodies are redacted unless
// their path is allowlisted.
var (
	bodyLogMu    sync.RWMutex
	bodyLogPaths = map[string]struct{}{}
	bodyLogLimit = 1 << 16
)

// AddBodyLogPaths allowlists paths whose request bodies are logged.
func AddBodyLogPaths(paths ...string) {
	bodyLogMu.Lock()
	defer bodyLogMu.Unlock()
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			bodyLogPaths[p] = struct{}{}
		}
	}
}

// SetBodyLogLimit caps the logged body size. n <= 0 is ignored.
func SetBodyLogLimit(n int) {
	if n <= 0 {
		return
	}
	bodyLogMu.Lock()
	bodyLogLimit = n
	bodyLogMu.Unlock()
}

// shouldLogBody accepts small JSON bodies on allowlisted paths. Platform
// events often arrive without a Content-Type, so the payload itself is checked.
func shouldLogBody(r *http.Request, body []byte) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	bodyLogMu.RLock()
	_, listed := bodyLogPaths[r.URL.Path]
	limit := bodyLogLimit
	bodyLogMu.RUnlock()
	if !listed || len(body) == 0 || len(body) > limit {
		return false
	}
	return json.Valid(body)
}
