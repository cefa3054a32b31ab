// Package scorequeries computes dashboard statistics over assessment scores.
package scorequeries

import (
	"context"
	"math"

	carrerastore "github.com/dalemusser/vocaguia/internal/app/store/carreras"
	formulariostore "github.com/dalemusser/vocaguia/internal/app/store/formularios"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MajorReader lists every major with its sub-area names, in storage order.
type MajorReader interface {
	ListSubareaRefs(ctx context.Context) ([]carrerastore.SubareaRefs, error)
}

// ScoreReader returns the non-null resultados of forms attached to any of names.
type ScoreReader interface {
	ScoresBySubareas(ctx context.Context, names []string) ([]any, error)
}

// MajorAverage is one dashboard row. Promedio is nil when the major has no
// numeric scores.
type MajorAverage struct {
	Carrera  string   `json:"carrera"`
	Promedio *float64 `json:"promedio"`
}

type Service struct {
	Majors MajorReader
	Scores ScoreReader
}

// New wires the service to the carreras and formularios collections.
func New(db *mongo.Database) *Service {
	return &Service{
		Majors: carrerastore.New(db),
		Scores: formulariostore.New(db),
	}
}

// AverageScoresByMajor returns one row per major with the arithmetic mean of
// the numeric scores of its sub-areas' forms. Nothing is cached.
func (s *Service) AverageScoresByMajor(ctx context.Context) ([]MajorAverage, error) {
	majors, err := s.Majors.ListSubareaRefs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MajorAverage, 0, len(majors))
	for _, m := range majors {
		row := MajorAverage{Carrera: m.Nombre}
		if len(m.SubAreas) > 0 {
			raw, err := s.Scores.ScoresBySubareas(ctx, m.SubAreas)
			if err != nil {
				return nil, err
			}
			row.Promedio = Mean(raw)
		}
		out = append(out, row)
	}
	return out, nil
}

// Mean averages the numeric entries of raw and skips everything else.
// It returns nil when no entry is numeric.
func Mean(raw []any) *float64 {
	var sum float64
	var n int
	for _, v := range raw {
		f, ok := numeric(v)
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func numeric(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case primitive.Decimal128:
		bf, _, err := t.BigFloat()
		if err != nil {
			return 0, false
		}
		f, _ = bf.Float64()
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
