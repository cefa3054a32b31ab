// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	bulkingestfeature "github.com/dalemusser/vocaguia/internal/app/features/bulkingest"
	carrerasfeature "github.com/dalemusser/vocaguia/internal/app/features/carreras"
	curriculumfeature "github.com/dalemusser/vocaguia/internal/app/features/curriculum"
	dashboardfeature "github.com/dalemusser/vocaguia/internal/app/features/dashboard"
	discoveryfeature "github.com/dalemusser/vocaguia/internal/app/features/discovery"
	errorsfeature "github.com/dalemusser/vocaguia/internal/app/features/errors"
	escuelasfeature "github.com/dalemusser/vocaguia/internal/app/features/escuelas"
	formulariosfeature "github.com/dalemusser/vocaguia/internal/app/features/formularios"
	healthfeature "github.com/dalemusser/vocaguia/internal/app/features/health"
	oauthfeature "github.com/dalemusser/vocaguia/internal/app/features/oauth"
	subareasfeature "github.com/dalemusser/vocaguia/internal/app/features/subareas"
	usuariosfeature "github.com/dalemusser/vocaguia/internal/app/features/usuarios"
	voluntariadosfeature "github.com/dalemusser/vocaguia/internal/app/features/voluntariados"
	"github.com/dalemusser/vocaguia/internal/app/store/sinks"
	"github.com/dalemusser/vocaguia/internal/app/system/auth"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/places"
	"github.com/dalemusser/vocaguia/internal/app/system/ratelimit"
	"github.com/dalemusser/vocaguia/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// memLimiter is the in-process rate limiter used when no Redis is
// configured. Shutdown stops its sweeper.
var memLimiter *ratelimit.Limiter

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every feature is a JSON API mounted under
// /api, plus /health and the OAuth2 sign-in flow under /auth/oauth2.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Bulk endpoints share one limiter; Redis makes it global across instances.
	var limiter ratelimit.Backend
	if deps.Redis != nil {
		limiter = ratelimit.NewRedis(deps.Redis, "vocaguia:rl", appCfg.BulkRateLimit, appCfg.BulkRateWindow)
	} else {
		memLimiter = ratelimit.New(appCfg.BulkRateLimit, appCfg.BulkRateWindow)
		limiter = memLimiter
	}

	engine := bulk.NewEngine(sinks.New(db), logger)
	engine.MaxItems = appCfg.BulkMaxItems

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(auth.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Catalog reads
	carrerasHandler := carrerasfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/carreras", carrerasfeature.Routes(carrerasHandler))

	subareasHandler := subareasfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/subareas", subareasfeature.Routes(subareasHandler))
	r.Mount("/api/subarea", subareasfeature.SingleRoutes(subareasHandler))

	escuelasHandler := escuelasfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/escuelas", escuelasfeature.Routes(escuelasHandler))

	formulariosHandler := formulariosfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/formulario", formulariosfeature.Routes(formulariosHandler))

	voluntariadosHandler := voluntariadosfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/voluntariados", voluntariadosfeature.Routes(voluntariadosHandler))

	// Aggregates
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler))

	// Writes
	bulkHandler := bulkingestfeature.NewHandler(engine, errLog, logger)
	r.Mount("/api/bulk", bulkingestfeature.Routes(bulkHandler, ratelimit.Middleware(limiter, "bulk", logger)))

	curriculumHandler := curriculumfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/mapa-curricular", curriculumfeature.Routes(curriculumHandler))

	usuariosHandler := usuariosfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/usuarios", usuariosfeature.Routes(usuariosHandler))

	// University discovery is only live when a Places key is configured.
	var searcher discoveryfeature.Searcher
	if appCfg.PlacesAPIKey != "" {
		client, err := places.New(places.Config{
			APIKey:  appCfg.PlacesAPIKey,
			BaseURL: appCfg.PlacesBaseURL,
			Region:    appCfg.PlacesRegion,
			PageDelay: appCfg.PlacesPageDelay,
		}, logger)
		if err != nil {
			logger.Error("places client init failed", zap.Error(err))
			return nil, err
		}
		searcher = client
	}
	discoveryHandler := discoveryfeature.NewHandler(searcher, engine, appCfg.PlacesPerKind, errLog, logger)
	r.Mount("/api/discovery", discoveryfeature.Routes(discoveryHandler, ratelimit.Middleware(limiter, "discovery", logger)))

	// OAuth2 sign-in
	oauthHandler := oauthfeature.NewHandler(db, oauthfeature.Config{
		Provider:     appCfg.OAuthProviderName,
		ClientID:     appCfg.OAuthClientID,
		ClientSecret: appCfg.OAuthClientSecret,
		AuthURL:      appCfg.OAuthAuthURL,
		TokenURL:     appCfg.OAuthTokenURL,
		UserInfoURL:  appCfg.OAuthUserInfoURL,
		Scopes:       appCfg.OAuthScopes,
		RedirectURL:  appCfg.BaseURL + appCfg.OAuthRedirectPath,
		StateTTL:     appCfg.OAuthStateTTL,
	}, errLog, logger)
	r.Mount("/auth/oauth2", oauthfeature.Routes(oauthHandler))

	return r, nil
}
