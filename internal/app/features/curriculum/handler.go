// internal/app/features/curriculum/handler.go
package curriculum

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	mapastore "github.com/dalemusser/vocaguia/internal/app/store/mapas"
	"github.com/dalemusser/vocaguia/internal/app/system/limits"
	"github.com/dalemusser/vocaguia/internal/app/system/records"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type EntryCreator interface {
	Create(ctx context.Context, m models.MapaCurricular) (models.MapaCurricular, error)
}

type Handler struct {
	Entries EntryCreator
	Log     *zap.Logger
	ErrLog  *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Entries: mapastore.New(db), Log: logger, ErrLog: errLog}
}

// ServeCreate handles POST /api/mapa-curricular with one entry. It applies
// the same validation as the mapas batch endpoint.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxRecordBody))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		apierrors.BadRequest(w, "malformed JSON body")
		return
	}

	rec, err := records.Decode(schema.Mapas, raw)
	if err != nil {
		apierrors.BadRequest(w, err.Error())
		return
	}
	entry := rec.(records.MapaCurricular).MapaCurricular

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Entries.Create(ctx, entry)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create mapa curricular failed", err, "Unable to save curriculum entry.")
		return
	}
	h.Log.Info("mapa curricular created",
		zap.String("id", created.ID.Hex()),
		zap.String("carrera", created.Carrera))
	apierrors.JSON(w, http.StatusCreated, created)
}
