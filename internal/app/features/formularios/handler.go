// internal/app/features/formularios/handler.go
package formularios

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	formulariostore "github.com/dalemusser/vocaguia/internal/app/store/formularios"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type FormReader interface {
	FirstBySubarea(ctx context.Context, subarea string) (models.Formulario, error)
}

type Handler struct {
	Forms  FormReader
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Forms: formulariostore.New(db), Log: logger, ErrLog: errLog}
}

// ServeBySubarea handles GET /api/formulario?subarea=.
// Returns the first form attached to the sub-area.
func (h *Handler) ServeBySubarea(w http.ResponseWriter, r *http.Request) {
	subarea := normalize.QueryParam(query.Get(r, "subarea"))
	if subarea == "" {
		apierrors.BadRequest(w, "subarea is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := h.Forms.FirstBySubarea(ctx, subarea)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, "formulario not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load formulario failed", err, "Unable to load form.")
		return
	}
	apierrors.JSON(w, http.StatusOK, f)
}
