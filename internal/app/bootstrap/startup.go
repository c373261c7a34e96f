// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	ratelimitstore "github.com/dalemusser/stratatour/internal/app/store/ratelimit"
	uploadstore "github.com/dalemusser/stratatour/internal/app/store/uploads"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/ratelimit"
	"github.com/dalemusser/stratatour/internal/app/system/tasks"
	"github.com/dalemusser/stratatour/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It installs the operation deadlines, builds the asset manager and login
// throttles shared by BuildHandler, and starts the background housekeeping
// jobs.
//
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Read:   appCfg.ReadTimeout,
		Write:  appCfg.WriteTimeout,
		Upload: appCfg.UploadTimeout,
	})

	assetManager = assets.New(deps.FileStorage, logger)
	assetManager.UseLedger(uploadstore.New(deps.MongoDatabase))

	loginLimiter = ratelimit.PerMinute(appCfg.LoginRequestsPerMinute)
	if appCfg.RateLimitEnabled {
		loginLockouts = ratelimitstore.New(
			deps.MongoDatabase,
			appCfg.RateLimitLoginAttempts,
			appCfg.RateLimitLoginWindow,
			appCfg.RateLimitLoginLockout,
		)
	} else {
		loginLockouts = nil
		logger.Warn("login lockout disabled")
	}

	startTaskRunner(logger)
	return nil
}

var (
	// assetManager uploads and releases stored files for every feature.
	assetManager *assets.Manager
	// loginLimiter throttles /auth/login per client IP.
	loginLimiter *ratelimit.Limiter
	// loginLockouts tracks failed logins per email; nil when lockout is disabled.
	loginLockouts *ratelimitstore.Store
	// taskRunner is kept for graceful shutdown.
	taskRunner *tasks.Runner
)

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.LimiterSweepJob(loginLimiter, logger))
	taskRunner.Register(tasks.StaleUploadSweepJob(assetManager))
	if loginLockouts != nil {
		taskRunner.Register(tasks.LockoutPruneJob(loginLockouts, logger))
	}

	taskRunner.Start()
}
