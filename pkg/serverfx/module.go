package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/construct"
	"github.com/joeydtaylor/steeze-runtime/pkg/core"
	"github.com/joeydtaylor/steeze-runtime/pkg/manifest"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-runtime/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Options ----------

type Config struct {
	Service         string // for logs/metrics tags only
	ManifestEnv     string // APP_MANIFEST
	DefaultManifest string // e.g., "manifest.toml"
	TLSCertEnv      string // SSL_SERVER_CERTIFICATE
	TLSKeyEnv       string // SSL_SERVER_KEY
	Catalog         *catalog.Catalog
}

type Option func(*Config)

func WithService(s string) Option            { return func(c *Config) { c.Service = s } }
func WithManifestEnv(k string) Option        { return func(c *Config) { c.ManifestEnv = k } }
func WithDefaultManifest(path string) Option { return func(c *Config) { c.DefaultManifest = path } }
func WithTLSCertKeyEnv(cert, key string) Option {
	return func(c *Config) { c.TLSCertEnv, c.TLSKeyEnv = cert, key }
}

// WithCatalog replaces catalog.Default() as the source of entry-point types.
func WithCatalog(cat *catalog.Catalog) Option { return func(c *Config) { c.Catalog = cat } }

func defaultConfig() Config {
	return Config{
		Service:         "function",
		ManifestEnv:     "APP_MANIFEST",
		DefaultManifest: "manifest.toml",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
	}
}

// Module returns a complete Fx option set. Startup fails if the cold start
// cannot resolve the configured entry point.
func Module(opts ...Option) fx.Option {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return fx.Options(
		fx.Provide(func() Config { return cfg }),
		fx.Provide(provideManifest),
		// Middleware
		bundlefx.Module,
		// Router impl
		fx.Provide(httpx.NewChi),
		// Cold start
		fx.Provide(provideCatalog),
		fx.Provide(provideStrategy),
		fx.Provide(provideEngine),
		fx.Provide(provideResolved),
		// Router
		fx.Provide(fx.Annotate(
			provideRouter,
			fx.ParamTags(``, ``, ``, `name:"metrics"`, ``, ``, ``), // man,a,lm,m,r,res,zl
			fx.ResultTags(`name:"app"`),
		)),
		// Lifecycle
		fx.Invoke(registerHooks),
	)
}

// ---------- Cold start ----------

func provideManifest(cfg Config) (manifest.Config, error) {
	path := envOr(cfg.ManifestEnv, cfg.DefaultManifest)
	man, err := core.LoadConfig(path)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return man, nil
}

func provideCatalog(cfg Config, man manifest.Config) (*catalog.Catalog, error) {
	c := cfg.Catalog
	if c == nil {
		c = catalog.Default()
	}
	if man.Environment.Servlet {
		if err := adapter.InstallServletSupport(c); err != nil {
			return nil, err
		}
	}
	if man.Environment.Web {
		if err := adapter.InstallWebSupport(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func provideStrategy(man manifest.Config) (construct.Strategy, error) {
	k, err := construct.Parse(man.Function.Strategy)
	if err != nil {
		return nil, err
	}
	return construct.New(k, construct.WithResolveHook(func(k construct.Kind, target string) {
		metrics.ObserveHandleResolution(string(k), target)
	}))
}

func provideEngine(man manifest.Config, c *catalog.Catalog, s construct.Strategy, zl *zap.Logger) (*core.Engine, error) {
	cd, ok := codec.ByName(man.Function.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", man.Function.Codec)
	}
	return core.NewEngine(c, s, zl, core.WithCodec(cd)), nil
}

func provideResolved(man manifest.Config, e *core.Engine) (core.Resolved, error) {
	return e.Resolve(core.EntryPoint(man.Function.EntryPoint))
}

// ---------- Router ----------

func provideRouter(
	man manifest.Config,
	a *auth.Middleware,
	lm *logger.Middleware,
	/* name:"metrics" */ m http.Handler,
	r httpx.Router,
	res core.Resolved,
	zl *zap.Logger,
) http.Handler {
	return core.BuildRouter(man, core.BuildDeps{
		Auth:    a,
		LogMW:   lm,
		Metrics: m,
		Router:  r,
		Adapter: res.Adapter,
		Log:     zl,
	})
}

// ---------- Lifecycle ----------

type serverDeps struct {
	fx.In
	Config   Config
	Manifest manifest.Config
	Resolved core.Resolved
	Logger   *zap.Logger
	App      http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := d.Manifest.Server.Listen
	cert := os.Getenv(d.Config.TLSCertEnv)
	key := os.Getenv(d.Config.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)
	wait := time.Duration(d.Manifest.Server.ShutdownWaitMS) * time.Millisecond

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log := d.Logger.With(
				zap.String("service", d.Config.Service),
				zap.String("addr", addr),
				zap.String("coldStartId", d.Resolved.ColdStartID),
				zap.Stringer("kind", d.Resolved.Kind),
			)
			if useTLS {
				log.Info("server starting (TLS)", zap.String("cert", cert))
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}
			log.Info("server starting (PLAINTEXT)")
			go func() {
				srv.TLSConfig = nil
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Config.Service))
			if wait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}
			_ = d.Logger.Sync()
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- tiny helpers ----------

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
