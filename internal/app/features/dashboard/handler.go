// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/store/queries/scorequeries"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Averager computes the per-major score rows.
type Averager interface {
	AverageScoresByMajor(ctx context.Context) ([]scorequeries.MajorAverage, error)
}

type Handler struct {
	Scores Averager
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Scores: scorequeries.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

// ServeAverageByMajor handles GET /api/dashboard/formularios/promedio-por-carrera.
//
// Response:
//
//	[ {"carrera":"Medicina","promedio":90}, {"carrera":"Derecho","promedio":null} ]
func (h *Handler) ServeAverageByMajor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.Scores.AverageScoresByMajor(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "average scores by major failed", err, "Unable to compute averages.")
		return
	}
	if rows == nil {
		rows = []scorequeries.MajorAverage{}
	}
	apierrors.JSON(w, http.StatusOK, rows)
}
