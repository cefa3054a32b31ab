// Package records turns validated Values into typed domain records.
//
// Record is a closed union: every implementation is declared here and is
// only produced by Decode, so nothing downstream of validation handles raw
// maps.
package records

import (
	"fmt"

	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/app/system/recordval"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Record is one validated item of a bulk batch.
type Record interface {
	Kind() schema.Kind
	// NaturalKey is the normalized lookup key, or "" for kinds without one.
	NaturalKey() string
	isRecord()
}

type Carrera struct{ models.Carrera }
type Escuela struct{ models.Escuela }
type Subarea struct{ models.Subarea }
type Voluntariado struct{ models.Voluntariado }
type Formulario struct{ models.Formulario }
type MapaCurricular struct{ models.MapaCurricular }

// User carries ZonaSet so a patch can tell "false" from "not sent".
type User struct {
	models.User
	ZonaSet bool
}

func (Carrera) Kind() schema.Kind        { return schema.Carreras }
func (Escuela) Kind() schema.Kind        { return schema.Escuelas }
func (Subarea) Kind() schema.Kind        { return schema.Subareas }
func (Voluntariado) Kind() schema.Kind   { return schema.Voluntariados }
func (Formulario) Kind() schema.Kind     { return schema.Formularios }
func (MapaCurricular) Kind() schema.Kind { return schema.Mapas }
func (User) Kind() schema.Kind           { return schema.Usuarios }

func (r Carrera) NaturalKey() string      { return text.Fold(r.Nombre) }
func (Escuela) NaturalKey() string        { return "" }
func (Subarea) NaturalKey() string        { return "" }
func (Voluntariado) NaturalKey() string   { return "" }
func (Formulario) NaturalKey() string     { return "" }
func (MapaCurricular) NaturalKey() string { return "" }
func (r User) NaturalKey() string         { return normalize.Email(r.Email) }

func (Carrera) isRecord()        {}
func (Escuela) isRecord()        {}
func (Subarea) isRecord()        {}
func (Voluntariado) isRecord()   {}
func (Formulario) isRecord()     {}
func (MapaCurricular) isRecord() {}
func (User) isRecord()           {}

// Decode validates raw against the kind's schema and builds its Record.
func Decode(kind schema.Kind, raw any) (Record, error) {
	s, ok := schema.For(kind)
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	v, err := recordval.Validate(raw, s)
	if err != nil {
		return nil, err
	}
	return Build(kind, v)
}

// Build assembles the typed record for kind from already-validated values.
func Build(kind schema.Kind, v recordval.Values) (Record, error) {
	switch kind {
	case schema.Carreras:
		return Carrera{models.Carrera{
			Nombre:      v.String("nombre"),
			Descripcion: v.String("descripcion"),
			MainArea:    v.String("main_area"),
			Videos:      v.Strings("videos"),
			SubAreas:    v.Strings("sub_areas"),
		}}, nil

	case schema.Escuelas:
		e := models.Escuela{
			Nombre:   v.String("nombre"),
			Type:     v.String("type"),
			Carreras: v.Strings("carreras"),
		}
		for _, p := range v.List("ubicacion") {
			lat, _ := p.Float("lat")
			lng, _ := p.Float("lng")
			e.Ubicacion = append(e.Ubicacion, models.Coordenadas{Lat: lat, Lng: lng})
		}
		e.Costo, _ = v.Float("costo")
		return Escuela{e}, nil

	case schema.Subareas:
		s := models.Subarea{
			Nombre:         v.String("nombre"),
			Introduccion:   v.String("introduccion"),
			Descripcion:    v.String("descripcion"),
			Carrera:        v.String("carrera"),
			VideosEscuela:  v.Strings("videos_escuela"),
			Progreso:       v.Int("progreso"),
			TotalLecciones: v.Int("total_lecciones"),
		}
		for _, l := range v.List("lecciones") {
			s.Lecciones = append(s.Lecciones, models.Leccion{
				Titulo:      l.String("titulo"),
				Videos:      l.Strings("videos"),
				Descripcion: l.String("descripcion"),
			})
		}
		return Subarea{s}, nil

	case schema.Voluntariados:
		vo := models.Voluntariado{
			Carrera:     v.String("carrera"),
			Titulo:      v.String("titulo"),
			Descripcion: v.String("descripcion"),
			Ubicacion:   v.String("ubicacion"),
			Permalink:   v.String("permalink"),
		}
		vo.Salario, _ = v.Float("salario")
		return Voluntariado{vo}, nil

	case schema.Formularios:
		f := models.Formulario{
			Nombre:      v.String("nombre"),
			Descripcion: v.String("descripcion"),
			Subarea:     v.String("subarea"),
			Preguntas:   models.OpaqueList(v.Raw("preguntas")),
			Respuestas:  models.OpaqueList(v.Raw("respuestas")),
		}
		if r, ok := v.Float("resultados"); ok {
			f.Resultados = &r
		}
		return Formulario{f}, nil

	case schema.Mapas:
		return MapaCurricular{models.MapaCurricular{
			Nombre:      v.String("nombre"),
			Descripcion: v.String("descripcion"),
			Carrera:     v.String("carrera"),
		}}, nil

	case schema.Usuarios:
		u := User{User: models.User{
			FirstName:    v.String("first_name"),
			LastName:     v.String("last_name"),
			Email:        normalize.Email(v.String("email")),
			Ubicacion:    v.String("ubicacion"),
			Discapacidad: v.String("discapacidad"),
			Carrera:      v.String("carrera"),
			MainArea:     v.String("main_area"),
			Intereses:    v.Strings("intereses"),
		}}
		u.Zona, u.ZonaSet = v.Bool("zona")
		return u, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}
