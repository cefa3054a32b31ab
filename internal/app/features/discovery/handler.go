// internal/app/features/discovery/handler.go
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/dedupe"
	"github.com/dalemusser/vocaguia/internal/app/system/inputval"
	"github.com/dalemusser/vocaguia/internal/app/system/limits"
	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/places"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// searchDepth is how many raw hits each search asks for before dedupe trims
// them to PerKind.
const searchDepth = 20

// Searcher is satisfied by *places.Client.
type Searcher interface {
	SearchUniversities(ctx context.Context, query string, limit int) ([]places.Place, error)
}

// Importer runs a batch through the bulk engine.
type Importer interface {
	Run(ctx context.Context, kind schema.Kind, items []any) (bulk.Result, error)
}

type Handler struct {
	Search  Searcher // nil when no API key is configured
	Import  Importer
	PerKind int
	Log     *zap.Logger
	ErrLog  *apierrors.ErrorLogger
}

// NewHandler wires the handler. search may be nil, in which case every
// request answers 503.
func NewHandler(search Searcher, engine Importer, perKind int, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if perKind <= 0 {
		perKind = 5
	}
	return &Handler{Search: search, Import: engine, PerKind: perKind, Log: logger, ErrLog: errLog}
}

type position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Candidate is one discovered university.
type Candidate struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Position position `json:"position"`
}

type discoverRequest struct {
	Estado string `json:"estado" validate:"required,max=100"`

	// Carreras and Costo are stamped on every imported escuela; both are
	// required by the escuelas schema, so import=true needs them.
	Carreras []string `json:"carreras" validate:"max=50,dive,max=100"`
	Costo    *float64 `json:"costo" validate:"omitempty,gte=0"`
}

// ServeUniversidades handles POST /api/discovery/universidades.
//
// Body: {"estado":"Puebla"}. With ?import=true the candidates are also
// stored as escuelas and the batch result is returned under "import"; the
// body must then carry "carreras" and "costo" for the stored records.
func (h *Handler) ServeUniversidades(w http.ResponseWriter, r *http.Request) {
	if h.Search == nil {
		apierrors.Detail(w, http.StatusServiceUnavailable, "places API key not configured")
		return
	}

	var req discoverRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxDiscoveryBody)).Decode(&req); err != nil {
		apierrors.BadRequest(w, "malformed JSON body")
		return
	}
	req.Estado = normalize.Name(req.Estado)
	if fields := inputval.Struct(req); fields != nil {
		apierrors.Fields(w, fields)
		return
	}
	doImport := query.Get(r, "import") == "true"
	if doImport {
		if fields := importFields(req); fields != nil {
			apierrors.Fields(w, fields)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	list, err := h.discover(ctx, req.Estado)
	if err != nil {
		h.Log.Warn("university discovery failed", zap.String("estado", req.Estado), zap.Error(err))
		apierrors.Detail(w, http.StatusBadGateway, "places search failed")
		return
	}

	if !doImport {
		apierrors.JSON(w, http.StatusOK, list)
		return
	}

	res, err := h.Import.Run(ctx, schema.Escuelas, toEscuelaItems(list, req.Carreras, *req.Costo))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "import discovered universities failed", err, "Unable to import universities.")
		return
	}
	apierrors.JSON(w, http.StatusOK, map[string]any{
		"universidades": list,
		"import":        res.Body(),
	})
}

// discover runs the public and private searches concurrently and returns
// up to PerKind public candidates followed by up to PerKind private ones.
func (h *Handler) discover(ctx context.Context, estado string) ([]Candidate, error) {
	var public, private []places.Place

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		public, err = h.Search.SearchUniversities(gctx, fmt.Sprintf("universidad pública en %s, México", estado), searchDepth)
		return err
	})
	g.Go(func() error {
		var err error
		private, err = h.Search.SearchUniversities(gctx, fmt.Sprintf("universidad privada en %s, México", estado), searchDepth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, 2*h.PerKind)
	out = append(out, h.top(public, "publica")...)
	out = append(out, h.top(private, "privada")...)
	return out, nil
}

func (h *Handler) top(hits []places.Place, kind string) []Candidate {
	hits = dedupe.Dedupe(hits, func(p places.Place) string { return p.Name })
	if len(hits) > h.PerKind {
		hits = hits[:h.PerKind]
	}
	out := make([]Candidate, len(hits))
	for i, p := range hits {
		out[i] = Candidate{Name: p.Name, Type: kind, Position: position{Lat: p.Lat, Lng: p.Lng}}
	}
	return out
}

// importFields reports the escuelas fields an import cannot fill from
// Places results.
func importFields(req discoverRequest) map[string]string {
	fields := map[string]string{}
	n := 0
	for _, c := range req.Carreras {
		if normalize.Name(c) != "" {
			n++
		}
	}
	if n == 0 {
		fields["carreras"] = "required when import=true"
	}
	if req.Costo == nil {
		fields["costo"] = "required when import=true"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// toEscuelaItems shapes candidates as raw escuelas records so they go
// through the same validation as any other batch.
func toEscuelaItems(list []Candidate, carreras []string, costo float64) []any {
	items := make([]any, len(list))
	for i, c := range list {
		cs := make([]any, len(carreras))
		for j, name := range carreras {
			cs[j] = name
		}
		items[i] = map[string]any{
			"nombre": c.Name,
			"type":   c.Type,
			"ubicacion": []any{
				map[string]any{"lat": c.Position.Lat, "lng": c.Position.Lng},
			},
			"carreras": cs,
			"costo":    costo,
		}
	}
	return items
}
