package auth

import (
	"errors"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
)

type claims struct {
	jwt.RegisteredClaims
	UID   string   `json:"uid"`
	Roles []string `json:"roles"`
	Role  string   `json:"role"`
}

func (m *Middleware) validateBearer(raw string) (User, error) {
	var (
		method string
		key    any
	)
	switch m.mode {
	case manifest.AuthHS256:
		method, key = "HS256", m.secret
	case manifest.AuthRS256:
		method, key = "RS256", m.publicKey
	default:
		return User{}, errors.New("auth disabled")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(m.leeway),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var c claims
	tok, err := jwt.NewParser(opts...).ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil || !tok.Valid {
		return User{}, errors.New("invalid bearer token")
	}

	username := c.UID
	if username == "" {
		username = c.Subject
	}
	if username == "" {
		return User{}, errors.New("missing subject")
	}
	role := c.Role
	if role == "" && len(c.Roles) > 0 {
		role = c.Roles[0]
	}
	return User{
		Username:             username,
		AuthenticationSource: AuthenticationSource{Provider: "bearer"},
		Role:                 Role{Name: role},
	}, nil
}

// HasRole reports whether u carries role.
func HasRole(u User, roles ...string) bool {
	return slices.Contains(roles, u.Role.Name)
}
