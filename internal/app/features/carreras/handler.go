// internal/app/features/carreras/handler.go
package carreras

import (
	"context"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	carrerastore "github.com/dalemusser/vocaguia/internal/app/store/carreras"
	mapastore "github.com/dalemusser/vocaguia/internal/app/store/mapas"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MajorNames lists major names by area.
type MajorNames interface {
	NamesByArea(ctx context.Context, area string) ([]string, error)
}

// Curriculum reads curriculum entries.
type Curriculum interface {
	NamesByCarrera(ctx context.Context, carrera string) ([]string, error)
	GetByNombre(ctx context.Context, nombre string) (models.MapaCurricular, error)
}

// Handler serves the /api/carreras tree.
type Handler struct {
	Majors     MajorNames
	Curriculum Curriculum
	Log        *zap.Logger
	ErrLog     *apierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Majors:     carrerastore.New(db),
		Curriculum: mapastore.New(db),
		Log:        logger,
		ErrLog:     errLog,
	}
}
