// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/store/oauthstate"
	"github.com/dalemusser/vocaguia/internal/app/system/auth"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const stateCleanupInterval = 15 * time.Minute

// stateCleanup is started in Startup and stopped in Shutdown.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It applies
// operation timeouts, initializes the session cookie store, and starts the
// background worker that sweeps expired OAuth states.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Batch:  appCfg.TimeoutBatch,
	})

	if appCfg.SessionName != "" {
		auth.SessionName = appCfg.SessionName
	}
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return err
	}

	stateCleanup = workers.NewStateCleanup(oauthstate.New(deps.MongoDatabase), logger, stateCleanupInterval)
	stateCleanup.Start()
	return nil
}
