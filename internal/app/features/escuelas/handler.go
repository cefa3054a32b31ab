// internal/app/features/escuelas/handler.go
package escuelas

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	escuelastore "github.com/dalemusser/vocaguia/internal/app/store/escuelas"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type SchoolReader interface {
	ListByCarrera(ctx context.Context, carrera string) ([]models.Escuela, error)
}

type Handler struct {
	Schools SchoolReader
	Log     *zap.Logger
	ErrLog  *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Schools: escuelastore.New(db), Log: logger, ErrLog: errLog}
}

// ServeByCarrera handles GET /api/escuelas?carrera=.
// Returns every school offering the major.
func (h *Handler) ServeByCarrera(w http.ResponseWriter, r *http.Request) {
	carrera := normalize.QueryParam(query.Get(r, "carrera"))
	if carrera == "" {
		apierrors.BadRequest(w, "carrera is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Schools.ListByCarrera(ctx, carrera)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list escuelas failed", err, "Unable to load schools.")
		return
	}
	apierrors.JSON(w, http.StatusOK, list)
}
