// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// ports, TLS, log level and CORS; everything specific to vocaguia lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: vocaguia-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Public base URL; the OAuth redirect URL is built from it.
	BaseURL string

	// OAuth2 provider (authorization code + PKCE). Either all of client id,
	// secret and the three URLs are set, or none.
	OAuthProviderName string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthAuthURL      string
	OAuthTokenURL     string
	OAuthUserInfoURL  string
	OAuthScopes       []string
	OAuthRedirectPath string
	OAuthStateTTL     time.Duration

	// Google Places (university discovery). Empty key disables discovery.
	PlacesAPIKey    string
	PlacesBaseURL   string
	PlacesRegion    string
	PlacesPerKind   int
	PlacesPageDelay time.Duration // wait before following a next_page_token

	// Bulk ingest limits
	BulkMaxItems   int
	BulkRateLimit  int
	BulkRateWindow time.Duration

	// Redis for the shared rate limiter. Empty keeps the in-memory limiter.
	RedisURL string

	// Operation timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutBatch  time.Duration
}
