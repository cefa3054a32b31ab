// internal/app/features/carreras/curriculum.go
package carreras

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeCurriculum handles GET /api/carreras/mapa-curricular?carrera=.
// Returns the course names of the major's curriculum.
func (h *Handler) ServeCurriculum(w http.ResponseWriter, r *http.Request) {
	carrera := normalize.QueryParam(query.Get(r, "carrera"))
	if carrera == "" {
		apierrors.BadRequest(w, "carrera is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Curriculum.NamesByCarrera(ctx, carrera)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list curriculum failed", err, "Unable to load curriculum.")
		return
	}
	apierrors.JSON(w, http.StatusOK, names)
}

type courseResponse struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Carrera     string `json:"carrera"`
}

// ServeCourse handles GET /api/carreras/mapa-curricular/descripcion?materia=.
func (h *Handler) ServeCourse(w http.ResponseWriter, r *http.Request) {
	materia := normalize.QueryParam(query.Get(r, "materia"))
	if materia == "" {
		apierrors.BadRequest(w, "materia is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Curriculum.GetByNombre(ctx, materia)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.NotFound(w, "materia not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load course failed", err, "Unable to load course.")
		return
	}
	apierrors.JSON(w, http.StatusOK, courseResponse{
		Nombre:      m.Nombre,
		Descripcion: m.Descripcion,
		Carrera:     m.Carrera,
	})
}
