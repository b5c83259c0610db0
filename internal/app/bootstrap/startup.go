// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratametrics/internal/app/resources"
	"github.com/dalemusser/stratametrics/internal/app/system/tasks"
	"github.com/dalemusser/stratametrics/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the backend client is built, but before the HTTP
// handler is built and requests are served.
//
// It registers shared templates, applies the configured timeouts, and starts
// the background task runner. Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Ping:    appCfg.PingTimeout,
		Request: appCfg.RequestTimeout,
	})

	startTaskRunner(deps, appCfg, logger)
	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(deps DBDeps, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	if deps.API != nil {
		taskRunner.Register(tasks.BackendProbeJob(deps.API, appCfg.ProbeInterval, timeouts.Ping(), logger))
	}

	taskRunner.Start()
}
