package auth

import (
	"context"
	"crypto/rsa"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
)

// Middleware authenticates invocation callers with bearer tokens.
// A Middleware built with mode "none" lets every request through
// unauthenticated.
type Middleware struct {
	mode      string
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
	leeway    time.Duration
	devBypass bool
}

// New builds the middleware from the [auth] manifest section. Secrets are read
// from the environment, never from the manifest itself.
func New(cfg manifest.Auth) (*Middleware, error) {
	m := &Middleware{
		mode:      cfg.Mode,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		leeway:    time.Duration(cfg.LeewaySeconds) * time.Second,
		devBypass: os.Getenv("AUTH_DEV_BYPASS") == "true",
	}
	switch cfg.Mode {
	case manifest.AuthNone, "":
		m.mode = manifest.AuthNone
	case manifest.AuthHS256:
		s := strings.TrimSpace(os.Getenv(cfg.SecretEnv))
		if s == "" {
			return nil, fmt.Errorf("auth: %s is empty", cfg.SecretEnv)
		}
		m.secret = []byte(s)
	case manifest.AuthRS256:
		b, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("auth: read public key: %w", err)
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM(b)
		if err != nil {
			return nil, fmt.Errorf("auth: parse public key: %w", err)
		}
		m.publicKey = pub
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.Mode)
	}
	return m, nil
}

// Enabled reports whether callers must present a token.
func (m *Middleware) Enabled() bool { return m != nil && m.mode != manifest.AuthNone }

func (m *Middleware) GetUser(ctx context.Context) User {
	if user, ok := ctx.Value(userCtxKey).(User); ok {
		return user
	}
	return User{}
}

func (m *Middleware) IsAuthenticated(ctx context.Context) bool {
	u, ok := ctx.Value(userCtxKey).(User)
	return ok && u.Username != ""
}

// WithUser returns ctx carrying u.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}
