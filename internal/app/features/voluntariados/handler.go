// internal/app/features/voluntariados/handler.go
package voluntariados

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	voluntariadostore "github.com/dalemusser/vocaguia/internal/app/store/voluntariados"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type PostingReader interface {
	ListByCarrera(ctx context.Context, carrera string) ([]models.Voluntariado, error)
}

type Handler struct {
	Postings PostingReader
	Log      *zap.Logger
	ErrLog   *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Postings: voluntariadostore.New(db), Log: logger, ErrLog: errLog}
}

// ServeByCarrera handles GET /api/voluntariados?carrera=.
func (h *Handler) ServeByCarrera(w http.ResponseWriter, r *http.Request) {
	carrera := normalize.QueryParam(query.Get(r, "carrera"))
	if carrera == "" {
		apierrors.BadRequest(w, "carrera is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Postings.ListByCarrera(ctx, carrera)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list voluntariados failed", err, "Unable to load volunteering.")
		return
	}
	apierrors.JSON(w, http.StatusOK, list)
}
