// internal/app/bootstrap/backend.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the analytics backend client.
//
// WAFFLE calls this after configuration is loaded and before Startup. The
// backend is not required to be up: the dashboard renders empty panels while
// it is down and the probe job reports when it comes back.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	api, err := apiclient.New(apiclient.Config{
		BaseURL:      appCfg.APIBaseURL,
		Timeout:      appCfg.APITimeout,
		MaxIdleConns: appCfg.APIMaxIdleConns,
	}, logger.Named("apiclient"))
	if err != nil {
		return DBDeps{}, err
	}

	logger.Info("analytics backend client ready",
		zap.String("base_url", api.BaseURL()),
		zap.Duration("timeout", appCfg.APITimeout))

	return DBDeps{API: api}, nil
}
