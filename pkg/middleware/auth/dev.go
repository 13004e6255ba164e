package auth

import (
	"net/http"
	"strings"
)

const devProvider = "dev"

// devInvoker lets a local caller invoke the function as X-Dev-User with
// X-Dev-Role. Only consulted when AUTH_DEV_BYPASS=true.
func devInvoker(r *http.Request) (User, bool) {
	name := strings.TrimSpace(r.Header.Get("X-Dev-User"))
	if name == "" {
		return User{}, false
	}
	return User{
		Username:             name,
		AuthenticationSource: AuthenticationSource{Provider: devProvider},
		Role:                 Role{Name: strings.TrimSpace(r.Header.Get("X-Dev-Role"))},
	}, true
}
