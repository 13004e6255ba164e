package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultDir = "log"

// file is one rotating log file under dir.
func file(dir, n string) zapcore.WriteSyncer {
	if dir == "" {
		dir = defaultDir
	}
	_ = os.MkdirAll(dir, 0o755)
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, n),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})
}

func tee(enc zapcore.EncoderConfig, w zapcore.WriteSyncer, lvl zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, lvl),
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), lvl),
	)
}

// NewLog tees message-less JSON access records to stdout and a rotating file
// log/<n>.
func NewLog(n string) *zap.Logger { return NewLogIn(defaultDir, n) }

// NewLogIn is NewLog with an explicit directory.
func NewLogIn(dir, n string) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.MessageKey = zapcore.OmitKey
	return zap.New(tee(enc, file(dir, n), zap.InfoLevel))
}

// NewSystemLog is the runtime's own logger: messages kept, ISO8601 times,
// caller attached, records below lvl dropped.
func NewSystemLog(dir, n string, lvl zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zap.New(tee(enc, file(dir, n), lvl), zap.AddCaller())
}
