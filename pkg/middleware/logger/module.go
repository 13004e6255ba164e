package logger

import (
	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	accessLogFile = "http-access.log"
	systemLogFile = "system.log"
)

// ProvideLoggerMiddleware returns nil when access logging is off.
func ProvideLoggerMiddleware(cfg manifest.Config) *Middleware {
	if !cfg.Log.AccessLog {
		return nil
	}
	return NewMiddleware(NewLogIn(cfg.Log.Dir, accessLogFile))
}

// ProvideLogger builds the system logger at the manifest's log.level. The
// manifest was validated on load, so an unparsable level falls back to info.
func ProvideLogger(cfg manifest.Config) *zap.Logger {
	lvl, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	return NewSystemLog(cfg.Log.Dir, systemLogFile, lvl)
}

var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware),
	fx.Provide(ProvideLogger),
)
