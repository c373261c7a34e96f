// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	blogfeature "github.com/dalemusser/stratatour/internal/app/features/blog"
	categoriesfeature "github.com/dalemusser/stratatour/internal/app/features/categories"
	contactsfeature "github.com/dalemusser/stratatour/internal/app/features/contacts"
	errorsfeature "github.com/dalemusser/stratatour/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratatour/internal/app/features/health"
	herofeature "github.com/dalemusser/stratatour/internal/app/features/hero"
	loginfeature "github.com/dalemusser/stratatour/internal/app/features/login"
	servicesfeature "github.com/dalemusser/stratatour/internal/app/features/services"
	tripdatefeature "github.com/dalemusser/stratatour/internal/app/features/tripdate"
	uploadsfeature "github.com/dalemusser/stratatour/internal/app/features/uploads"
	"github.com/dalemusser/stratatour/internal/app/system/apicors"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for stratatour.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. Every content area gets one mount point; reads are
// public and mutations sit behind auth.RequireAdmin inside each feature's
// Routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Production refuses a weak or placeholder signing secret.
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, auth.DefaultTTL, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()
	am := assetManager
	maxUpload := appCfg.MaxUploadMB << 20

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: long enough for the slowest asset upload.
	r.Use(chimw.Timeout(requestTimeout(appCfg.UploadTimeout)))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(apicors.Middleware(appCfg.CORSOrigins...))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.StorageType, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Uploaded files (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Admin login
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, tokens, loginLockouts, errLog, logger)
	r.Mount("/auth/login", loginfeature.Routes(loginHandler, loginLimiter))

	// Singletons
	heroHandler := herofeature.NewHandler(herofeature.NewService(deps.MongoDatabase, am, logger), maxUpload, errLog, logger)
	r.Mount("/hero", herofeature.Routes(heroHandler, tokens))

	tripDateHandler := tripdatefeature.NewHandler(tripdatefeature.NewService(deps.MongoDatabase, am, logger), maxUpload, errLog, logger)
	r.Mount("/trip-date", tripdatefeature.Routes(tripDateHandler, tokens))

	contactsHandler := contactsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/contacts", contactsfeature.Routes(contactsHandler, tokens))

	// Collections
	categoriesHandler := categoriesfeature.NewHandler(categoriesfeature.NewService(deps.MongoDatabase, am, logger), errLog, logger)
	r.Mount("/get-to-know-russia", categoriesfeature.Routes(categoriesHandler, tokens))

	servicesHandler := servicesfeature.NewHandler(servicesfeature.NewService(deps.MongoDatabase, am, logger), errLog, logger)
	r.Mount("/services", servicesfeature.Routes(servicesHandler, tokens))

	blogHandler := blogfeature.NewHandler(blogfeature.NewService(deps.MongoDatabase, am, logger), errLog, logger)
	r.Mount("/blog", blogfeature.Routes(blogHandler, tokens))

	// Generic image upload for the admin UI
	uploadsHandler := uploadsfeature.NewHandler(am, maxUpload, errLog, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler, tokens))

	// JSON envelopes for unmatched routes and methods
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	return r, nil
}

// requestTimeout is the global handler deadline: 30s, or the upload deadline
// plus slack when that is longer.
func requestTimeout(upload time.Duration) time.Duration {
	const base = 30 * time.Second
	if upload+10*time.Second > base {
		return upload + 10*time.Second
	}
	return base
}
