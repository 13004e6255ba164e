package auth

import (
	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
	"go.uber.org/fx"
)

// ProvideAuthentication builds the middleware from the loaded manifest.
func ProvideAuthentication(cfg manifest.Config) (*Middleware, error) {
	return New(cfg.Auth)
}

var Module = fx.Options(
	fx.Provide(ProvideAuthentication),
)
