// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/system/places"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for vocaguia.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: VOCAGUIA_MONGO_URI, VOCAGUIA_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "vocaguia", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "vocaguia-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL of the API"},

	// OAuth2 provider
	{Name: "oauth_provider_name", Default: "google", Desc: "Provider label stored on users created by OAuth sign-in"},
	{Name: "oauth_client_id", Default: "", Desc: "OAuth2 client ID"},
	{Name: "oauth_client_secret", Default: "", Desc: "OAuth2 client secret"},
	{Name: "oauth_auth_url", Default: "", Desc: "OAuth2 authorization endpoint"},
	{Name: "oauth_token_url", Default: "", Desc: "OAuth2 token endpoint"},
	{Name: "oauth_userinfo_url", Default: "", Desc: "OpenID Connect userinfo endpoint"},
	{Name: "oauth_scopes", Default: "openid,email,profile", Desc: "Comma-separated OAuth2 scopes"},
	{Name: "oauth_redirect_path", Default: "/auth/oauth2/callback", Desc: "Callback path appended to base_url"},
	{Name: "oauth_state_ttl", Default: "10m", Desc: "Lifetime of a pending OAuth2 state"},

	// Google Places
	{Name: "places_api_key", Default: "", Desc: "Google Places API key (blank disables discovery)"},
	{Name: "places_base_url", Default: "", Desc: "Override for the Places Text Search endpoint"},
	{Name: "places_region", Default: "mx", Desc: "Places region bias"},
	{Name: "places_per_kind", Default: 5, Desc: "Universities kept per type (1-20)"},
	{Name: "places_page_delay", Default: "2s", Desc: "Wait before requesting the next Places results page"},

	// Bulk ingest
	{Name: "bulk_max_items", Default: 1000, Desc: "Maximum records per bulk request"},
	{Name: "bulk_rate_limit", Default: 30, Desc: "Bulk requests allowed per client IP per window"},
	{Name: "bulk_rate_window", Default: "1m", Desc: "Bulk rate limit window"},
	{Name: "redis_url", Default: "", Desc: "Redis URL for the shared rate limiter (blank uses in-memory)"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list queries"},
	{Name: "timeout_batch", Default: "2m", Desc: "Timeout for one bulk batch"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VOCAGUIA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VOCAGUIA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		BaseURL:          strings.TrimRight(appValues.String("base_url"), "/"),

		OAuthProviderName: appValues.String("oauth_provider_name"),
		OAuthClientID:     appValues.String("oauth_client_id"),
		OAuthClientSecret: appValues.String("oauth_client_secret"),
		OAuthAuthURL:      appValues.String("oauth_auth_url"),
		OAuthTokenURL:     appValues.String("oauth_token_url"),
		OAuthUserInfoURL:  appValues.String("oauth_userinfo_url"),
		OAuthScopes:       splitList(appValues.String("oauth_scopes")),
		OAuthRedirectPath: appValues.String("oauth_redirect_path"),
		OAuthStateTTL:     appValues.Duration("oauth_state_ttl", 10*time.Minute),

		PlacesAPIKey:    appValues.String("places_api_key"),
		PlacesBaseURL:   appValues.String("places_base_url"),
		PlacesRegion:    appValues.String("places_region"),
		PlacesPerKind:   appValues.Int("places_per_kind"),
		PlacesPageDelay: appValues.Duration("places_page_delay", places.DefaultPageDelay),

		BulkMaxItems:   appValues.Int("bulk_max_items"),
		BulkRateLimit:  appValues.Int("bulk_rate_limit"),
		BulkRateWindow: appValues.Duration("bulk_rate_window", time.Minute),
		RedisURL:       appValues.String("redis_url"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutBatch:  appValues.Duration("timeout_batch", 2*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// splitList splits a comma-separated value and drops blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(appCfg)
}

func validateAppConfig(c AppConfig) error {
	if c.BulkMaxItems <= 0 {
		return errors.New("bulk_max_items must be positive")
	}
	if c.BulkRateLimit <= 0 || c.BulkRateWindow <= 0 {
		return errors.New("bulk_rate_limit and bulk_rate_window must be positive")
	}
	if c.PlacesPerKind < 1 || c.PlacesPerKind > 20 {
		return fmt.Errorf("places_per_kind must be between 1 and 20, got %d", c.PlacesPerKind)
	}

	oauth := []string{c.OAuthClientID, c.OAuthClientSecret, c.OAuthAuthURL, c.OAuthTokenURL, c.OAuthUserInfoURL}
	set := 0
	for _, v := range oauth {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set != 0 && set != len(oauth) {
		return errors.New("oauth settings are incomplete: set client id, client secret, auth, token and userinfo URLs together")
	}
	if set != 0 && !strings.HasPrefix(c.OAuthRedirectPath, "/") {
		return errors.New("oauth_redirect_path must start with /")
	}
	return nil
}
