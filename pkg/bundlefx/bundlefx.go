// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-runtime/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provides the HTTP middleware stack: bearer auth, access and system
// logging, and the named "metrics" handler.
var Module = fx.Options(
	auth.Module,
	logger.Module,
	metrics.Module,
)
