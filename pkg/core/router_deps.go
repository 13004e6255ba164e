package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-runtime/pkg/adapter"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-runtime/pkg/transport/httpx"
	"go.uber.org/zap"
)

type BuildDeps struct {
	Auth    *auth.Middleware
	LogMW   *logger.Middleware
	Metrics http.Handler
	Router  httpx.Router
	Adapter adapter.Adapter
	Log     *zap.Logger
}
