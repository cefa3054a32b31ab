// internal/app/features/subareas/handler.go
package subareas

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	subareastore "github.com/dalemusser/vocaguia/internal/app/store/subareas"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type SubareaReader interface {
	GetByNombre(ctx context.Context, nombre string) (models.Subarea, error)
	NamesByCarrera(ctx context.Context, carrera string) ([]string, error)
	ListByCarrera(ctx context.Context, carrera string) ([]models.Subarea, error)
}

type Handler struct {
	Subareas SubareaReader
	Log      *zap.Logger
	ErrLog   *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Subareas: subareastore.New(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// ServeNames handles GET /api/subareas?carrera=.
// Returns the names of the subareas whose carrera matches, case-insensitive.
func (h *Handler) ServeNames(w http.ResponseWriter, r *http.Request) {
	carrera := normalize.QueryParam(query.Get(r, "carrera"))
	if carrera == "" {
		apierrors.BadRequest(w, "carrera is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Subareas.NamesByCarrera(ctx, carrera)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list subarea names failed", err, "Unable to load sub-areas.")
		return
	}
	apierrors.JSON(w, http.StatusOK, names)
}

// ServeDetalle handles GET /api/subareas/detalle?carrera=.
// Returns the full sub-area records of the major.
func (h *Handler) ServeDetalle(w http.ResponseWriter, r *http.Request) {
	carrera := normalize.QueryParam(query.Get(r, "carrera"))
	if carrera == "" {
		apierrors.BadRequest(w, "carrera is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Subareas.ListByCarrera(ctx, carrera)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list subareas failed", err, "Unable to load sub-areas.")
		return
	}
	apierrors.JSON(w, http.StatusOK, list)
}

// ServeOne handles GET /api/subarea?nombre=.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	nombre := normalize.QueryParam(query.Get(r, "nombre"))
	if nombre == "" {
		apierrors.BadRequest(w, "nombre is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sa, err := h.Subareas.GetByNombre(ctx, nombre)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, "subarea not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load subarea failed", err, "Unable to load sub-area.")
		return
	}
	apierrors.JSON(w, http.StatusOK, sa)
}
