// internal/app/features/usuarios/handler.go
package usuarios

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	userstore "github.com/dalemusser/vocaguia/internal/app/store/users"
	"github.com/dalemusser/vocaguia/internal/app/system/auth"
	"github.com/dalemusser/vocaguia/internal/app/system/inputval"
	"github.com/dalemusser/vocaguia/internal/app/system/limits"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

type UserCreator interface {
	Create(ctx context.Context, u models.User) (models.User, error)
}

type Handler struct {
	Users  UserCreator
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger, ErrLog: errLog}
}

type registroRequest struct {
	FirstName     string   `json:"first_name" validate:"required,max=100"`
	LastName      string   `json:"last_name" validate:"required,max=100"`
	Email         string   `json:"email" validate:"required,email,max=254"`
	Ubicacion     string   `json:"ubicacion" validate:"max=200"`
	Discapacidad  string   `json:"discapacidad" validate:"max=200"`
	Carrera       string   `json:"carrera" validate:"max=200"`
	MainArea      string   `json:"main_area" validate:"omitempty,oneof=sociales ciencias salud humanidades"`
	Intereses     []string `json:"intereses" validate:"max=50,dive,max=100"`
	Zona          *bool    `json:"zona"`
	OAuthProvider string   `json:"oauth_provider" validate:"max=64"`
	OAuthToken    string   `json:"oauth_token" validate:"required_with=OAuthProvider"`
}

func (req *registroRequest) normalize() {
	req.FirstName = normalize.Name(req.FirstName)
	req.LastName = normalize.Name(req.LastName)
	req.Email = normalize.Email(req.Email)
	req.Ubicacion = strings.TrimSpace(req.Ubicacion)
	req.Discapacidad = strings.TrimSpace(req.Discapacidad)
	req.Carrera = strings.TrimSpace(req.Carrera)
	req.MainArea = normalize.Area(req.MainArea)
	req.OAuthProvider = strings.TrimSpace(req.OAuthProvider)
	req.OAuthToken = strings.TrimSpace(req.OAuthToken)

	kept := req.Intereses[:0]
	for _, s := range req.Intereses {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	req.Intereses = kept
}

// tokenFingerprint is the hex blake2b-256 digest of a provider token.
func tokenFingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ServeRegistro handles POST /api/usuarios/registro.
func (h *Handler) ServeRegistro(w http.ResponseWriter, r *http.Request) {
	var req registroRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxRegistroBody)).Decode(&req); err != nil {
		apierrors.BadRequest(w, "malformed JSON body")
		return
	}
	req.normalize()

	if fields := inputval.Struct(req); fields != nil {
		apierrors.Fields(w, fields)
		return
	}

	u := models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Ubicacion:     req.Ubicacion,
		Discapacidad:  req.Discapacidad,
		Carrera:       req.Carrera,
		MainArea:      req.MainArea,
		Intereses:     req.Intereses,
		OAuthProvider: req.OAuthProvider,
	}
	if req.Zona != nil {
		u.Zona = *req.Zona
	}
	if req.OAuthToken != "" {
		u.OAuthTokenFP = tokenFingerprint(req.OAuthToken)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Users.Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apierrors.Detail(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Unable to register user.")
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.Bool("oauth", created.OAuthProvider != ""))
	apierrors.JSON(w, http.StatusCreated, created)
}

// ServeMe handles GET /api/usuarios/me. RequireSignedIn guards it.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierrors.Detail(w, http.StatusUnauthorized, "not signed in")
		return
	}
	apierrors.JSON(w, http.StatusOK, u)
}
