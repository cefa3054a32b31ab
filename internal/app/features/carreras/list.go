// internal/app/features/carreras/list.go
package carreras

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeByArea handles GET /api/carreras?area=.
// Returns the major names in the area, or every major name when area is blank.
func (h *Handler) ServeByArea(w http.ResponseWriter, r *http.Request) {
	area := normalize.Area(query.Get(r, "area"))
	if area != "" && !models.IsMainArea(area) {
		apierrors.BadRequest(w, "area must be one of: "+strings.Join(models.MainAreas, ", "))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Majors.NamesByArea(ctx, area)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list carreras by area failed", err, "Unable to load majors.")
		return
	}
	apierrors.JSON(w, http.StatusOK, names)
}
