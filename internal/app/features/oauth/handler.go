// internal/app/features/oauth/handler.go
package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/vocaguia/internal/app/store/users"
	"github.com/dalemusser/vocaguia/internal/app/system/auth"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// StateStore persists pending authorizations between start and callback.
type StateStore interface {
	Save(ctx context.Context, state, verifier, returnURL string, expiresAt time.Time) error
	Consume(ctx context.Context, state string) (oauthstate.State, bool, error)
}

// UserResolver maps a provider identity to a local user.
type UserResolver interface {
	FindOrCreateByEmail(ctx context.Context, u models.User) (models.User, bool, error)
}

// Config describes one OAuth2 provider.
type Config struct {
	Provider     string
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
	RedirectURL  string
	StateTTL     time.Duration
}

// Configured reports whether every provider setting needed for the flow is present.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.AuthURL != "" &&
		c.TokenURL != "" && c.UserInfoURL != "" && c.RedirectURL != ""
}

// Handler handles the OAuth2 authorization-code flow with PKCE.
type Handler struct {
	Cfg    Config
	States StateStore
	Users  UserResolver
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, cfg Config, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}
	return &Handler{
		Cfg:    cfg,
		States: oauthstate.New(db),
		Users:  userstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.Cfg.ClientID,
		ClientSecret: h.Cfg.ClientSecret,
		RedirectURL:  h.Cfg.RedirectURL,
		Scopes:       h.Cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  h.Cfg.AuthURL,
			TokenURL: h.Cfg.TokenURL,
		},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/oauth2/start                                                       |
| Creates a one-time state and PKCE verifier and returns the consent URL.      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeStart(w http.ResponseWriter, r *http.Request) {
	if !h.Cfg.Configured() {
		apierrors.Detail(w, http.StatusServiceUnavailable, "oauth provider not configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.ErrLog.LogServerError(w, r, "generate oauth state failed", err, "Unable to start sign-in.")
		return
	}
	verifier := oauth2.GenerateVerifier()
	returnURL := urlutil.SafeReturn(query.Get(r, "return"), "", "/")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.States.Save(ctx, state, verifier, returnURL, time.Now().UTC().Add(h.Cfg.StateTTL)); err != nil {
		h.ErrLog.LogServerError(w, r, "save oauth state failed", err, "Unable to start sign-in.")
		return
	}

	authURL := h.oauth2Config().AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	h.Log.Debug("oauth flow started",
		zap.String("provider", h.Cfg.Provider),
		zap.String("return_url", returnURL))
	apierrors.JSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/oauth2/callback                                                    |
| Consumes the state, exchanges the code, resolves the user, signs them in.    |
*─────────────────────────────────────────────────────────────────────────────*/

type callbackResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Carrera   string `json:"carrera"`
	Created   bool   `json:"created"`
	ReturnURL string `json:"return_url"`
}

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if !h.Cfg.Configured() {
		apierrors.Detail(w, http.StatusServiceUnavailable, "oauth provider not configured")
		return
	}

	if errParam := query.Get(r, "error"); errParam != "" {
		h.Log.Warn("oauth provider returned an error",
			zap.String("error", errParam),
			zap.String("description", query.Get(r, "error_description")))
		apierrors.BadRequest(w, "authorization denied")
		return
	}

	state := query.Get(r, "state")
	code := query.Get(r, "code")
	if state == "" || code == "" {
		apierrors.BadRequest(w, "state and code are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, found, err := h.States.Consume(ctx, state)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "consume oauth state failed", err, "Unable to complete sign-in.")
		return
	}
	if !found {
		h.Log.Warn("invalid or expired oauth state")
		apierrors.BadRequest(w, "invalid or expired state")
		return
	}

	cfg := h.oauth2Config()
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(st.Verifier))
	if err != nil {
		h.Log.Warn("oauth code exchange failed", zap.Error(err))
		apierrors.Detail(w, http.StatusBadGateway, "code exchange failed")
		return
	}

	info, err := fetchUserInfo(ctx, cfg, token, h.Cfg.UserInfoURL)
	if err != nil {
		h.Log.Warn("oauth userinfo fetch failed", zap.Error(err))
		apierrors.Detail(w, http.StatusBadGateway, "unable to fetch user info")
		return
	}

	u, created, err := h.Users.FindOrCreateByEmail(ctx, models.User{
		FirstName:     info.firstName(),
		LastName:      info.FamilyName,
		Email:         info.Email,
		OAuthProvider: h.Cfg.Provider,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve oauth user failed", err, "Unable to complete sign-in.")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email: u.Email,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to complete sign-in.")
		return
	}

	h.Log.Info("user signed in via oauth",
		zap.String("provider", h.Cfg.Provider),
		zap.String("user_id", u.ID.Hex()),
		zap.Bool("created", created))

	apierrors.JSON(w, http.StatusOK, callbackResponse{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Carrera:   u.Carrera,
		Created:   created,
		ReturnURL: st.ReturnURL,
	})
}

// userInfo is the subset of OpenID Connect standard claims we read.
type userInfo struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (u userInfo) firstName() string {
	if u.GivenName != "" {
		return u.GivenName
	}
	return u.Name
}

var errNoEmail = errors.New("userinfo has no email")

func fetchUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, url string) (userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return userInfo{}, err
	}
	resp, err := cfg.Client(ctx, token).Do(req)
	if err != nil {
		return userInfo{}, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return userInfo{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return userInfo{}, fmt.Errorf("decode user info: %w", err)
	}
	if strings.TrimSpace(info.Email) == "" {
		return userInfo{}, errNoEmail
	}
	return info, nil
}

// generateState returns 32 random bytes, URL-safe encoded.
func generateState() (string, error) {
	b := securecookie.GenerateRandomKey(32)
	if b == nil {
		return "", errors.New("random source unavailable")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
