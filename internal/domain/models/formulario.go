// internal/domain/models/formulario.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Formulario is an assessment form attached to a Subarea (by name).
// Resultados is nil until the form has been scored.
type Formulario struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Preguntas   OpaqueList         `bson:"preguntas" json:"preguntas"`
	Respuestas  OpaqueList         `bson:"respuestas" json:"respuestas"`
	Resultados  *float64           `bson:"resultados" json:"resultados"`
	Subarea     string             `bson:"subarea" json:"subarea"`
	SubareaCI   string             `bson:"subarea_ci" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
}

// OpaqueList holds client-defined structures that are stored as-is.
// Embedded documents decode as primitive.D; MarshalJSON renders them as
// plain JSON objects.
type OpaqueList []any

func (l OpaqueList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = plain(v)
	}
	return json.Marshal(out)
}

func plain(v any) any {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}
