package core

import (
	"encoding/json"
	"net/http"
)

// writeBody labels JSON output as such; anything else is sent as text.
func writeBody(w http.ResponseWriter, payload []byte, status int) {
	if json.Valid(payload) {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(status)
	if len(payload) > 0 {
		_, _ = w.Write(payload)
	}
}
