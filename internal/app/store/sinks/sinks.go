// Package sinks adapts the Mongo stores to the bulk engine's Sink interfaces.
package sinks

import (
	"context"
	"fmt"

	carrerastore "github.com/dalemusser/vocaguia/internal/app/store/carreras"
	escuelastore "github.com/dalemusser/vocaguia/internal/app/store/escuelas"
	formulariostore "github.com/dalemusser/vocaguia/internal/app/store/formularios"
	mapastore "github.com/dalemusser/vocaguia/internal/app/store/mapas"
	subareastore "github.com/dalemusser/vocaguia/internal/app/store/subareas"
	userstore "github.com/dalemusser/vocaguia/internal/app/store/users"
	voluntariadostore "github.com/dalemusser/vocaguia/internal/app/store/voluntariados"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/records"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// New returns one sink per record kind, all backed by db.
func New(db *mongo.Database) map[schema.Kind]bulk.Sink {
	return map[schema.Kind]bulk.Sink{
		schema.Carreras:      carreras{carrerastore.New(db)},
		schema.Escuelas:      escuelas{escuelastore.New(db)},
		schema.Subareas:      subareas{subareastore.New(db)},
		schema.Voluntariados: voluntariados{voluntariadostore.New(db)},
		schema.Formularios:   formularios{formulariostore.New(db)},
		schema.Mapas:         mapas{mapastore.New(db)},
		schema.Usuarios:      usuarios{userstore.New(db)},
	}
}

func wrongType(want schema.Kind, rec records.Record) error {
	return fmt.Errorf("sink %s cannot store a %s record", want, rec.Kind())
}

type carreras struct{ s *carrerastore.Store }

func (k carreras) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.Carrera)
	if !ok {
		return "", wrongType(schema.Carreras, rec)
	}
	c, err := k.s.Create(ctx, r.Carrera)
	if err != nil {
		return "", err
	}
	return c.ID.Hex(), nil
}

func (k carreras) FindByKey(ctx context.Context, key string) (string, bool, error) {
	id, found, err := k.s.FindIDByNombreCI(ctx, key)
	if err != nil || !found {
		return "", found, err
	}
	return id.Hex(), true, nil
}

func (k carreras) Patch(ctx context.Context, id string, rec records.Record) error {
	r, ok := rec.(records.Carrera)
	if !ok {
		return wrongType(schema.Carreras, rec)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return k.s.Patch(ctx, oid, r.Carrera)
}

type usuarios struct{ s *userstore.Store }

func (k usuarios) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.User)
	if !ok {
		return "", wrongType(schema.Usuarios, rec)
	}
	u, err := k.s.Create(ctx, r.User)
	if err != nil {
		return "", err
	}
	return u.ID.Hex(), nil
}

func (k usuarios) FindByKey(ctx context.Context, key string) (string, bool, error) {
	id, found, err := k.s.FindIDByEmail(ctx, key)
	if err != nil || !found {
		return "", found, err
	}
	return id.Hex(), true, nil
}

func (k usuarios) Patch(ctx context.Context, id string, rec records.Record) error {
	r, ok := rec.(records.User)
	if !ok {
		return wrongType(schema.Usuarios, rec)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return k.s.Patch(ctx, oid, r.User, r.ZonaSet)
}

type escuelas struct{ s *escuelastore.Store }

func (k escuelas) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.Escuela)
	if !ok {
		return "", wrongType(schema.Escuelas, rec)
	}
	e, err := k.s.Create(ctx, r.Escuela)
	if err != nil {
		return "", err
	}
	return e.ID.Hex(), nil
}

type subareas struct{ s *subareastore.Store }

func (k subareas) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.Subarea)
	if !ok {
		return "", wrongType(schema.Subareas, rec)
	}
	sa, err := k.s.Create(ctx, r.Subarea)
	if err != nil {
		return "", err
	}
	return sa.ID.Hex(), nil
}

type voluntariados struct{ s *voluntariadostore.Store }

func (k voluntariados) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.Voluntariado)
	if !ok {
		return "", wrongType(schema.Voluntariados, rec)
	}
	v, err := k.s.Create(ctx, r.Voluntariado)
	if err != nil {
		return "", err
	}
	return v.ID.Hex(), nil
}

type formularios struct{ s *formulariostore.Store }

func (k formularios) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.Formulario)
	if !ok {
		return "", wrongType(schema.Formularios, rec)
	}
	f, err := k.s.Create(ctx, r.Formulario)
	if err != nil {
		return "", err
	}
	return f.ID.Hex(), nil
}

type mapas struct{ s *mapastore.Store }

func (k mapas) Insert(ctx context.Context, rec records.Record) (string, error) {
	r, ok := rec.(records.MapaCurricular)
	if !ok {
		return "", wrongType(schema.Mapas, rec)
	}
	m, err := k.s.Create(ctx, r.MapaCurricular)
	if err != nil {
		return "", err
	}
	return m.ID.Hex(), nil
}
