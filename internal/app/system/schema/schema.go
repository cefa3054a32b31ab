// Package schema declares, per record kind, the fields accepted by bulk
// ingest: their order, types, requiredness and nested structure.
//
// Field order matters. The record validator walks fields in declaration
// order and stops at the first violation, so the order here decides which
// error a caller sees for a record with several problems.
package schema

import (
	"sort"

	"github.com/dalemusser/vocaguia/internal/domain/models"
)

// Kind names a record kind. The value doubles as the bulk URL segment.
type Kind string

const (
	Carreras      Kind = "carreras"
	Escuelas      Kind = "escuelas"
	Subareas      Kind = "subareas"
	Voluntariados Kind = "voluntariados"
	Formularios   Kind = "formularios"
	Mapas         Kind = "mapas"
	Usuarios      Kind = "usuarios"
)

// Type is the semantic type of a field.
type Type int

const (
	String     Type = iota // trimmed string
	Number                 // float64, coerced from numeric strings
	Int                    // integer, coerced from numbers or numeric strings
	Bool                   // bool or "true"/"false"
	Enum                   // trimmed, lower-cased, member of Field.Enum
	StringList             // list of strings, blank entries dropped
	ObjectList             // list of objects validated against Field.Elem
	Opaque                 // list stored as-is
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Int:
		return "integer"
	case Bool:
		return "boolean"
	case Enum:
		return "enum"
	case StringList:
		return "list of strings"
	case ObjectList:
		return "list of objects"
	case Opaque:
		return "list"
	}
	return "unknown"
}

// Field describes one accepted key.
type Field struct {
	Name     string
	Type     Type
	Required bool

	// Enum holds the allowed values for Type == Enum.
	Enum []string
	// Elem is the element schema for Type == ObjectList.
	Elem *Schema
	// Nullable lets an explicit null through as a present, empty value.
	Nullable bool
	// Min, when set, is the inclusive lower bound for Number fields.
	Min *float64
	// Format names an extra string check ("email").
	Format string
	// Informational fields fall back to their zero value instead of failing
	// when the input cannot be coerced.
	Informational bool
}

// Schema is the ordered field list of one kind.
type Schema struct {
	Kind       Kind
	Collection string
	Fields     []Field
	// NaturalKey names the field used for upsert lookups; empty means every
	// accepted record is inserted.
	NaturalKey string
}

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Keyed reports whether the kind upserts by natural key.
func (s Schema) Keyed() bool { return s.NaturalKey != "" }

func zero() *float64 {
	v := 0.0
	return &v
}

var coordenadas = Schema{
	Fields: []Field{
		{Name: "lat", Type: Number, Required: true},
		{Name: "lng", Type: Number, Required: true},
	},
}

var leccion = Schema{
	Fields: []Field{
		{Name: "titulo", Type: String, Required: true},
		{Name: "videos", Type: StringList},
		{Name: "descripcion", Type: String},
	},
}

var registry = map[Kind]Schema{
	Carreras: {
		Kind:       Carreras,
		Collection: "carreras",
		NaturalKey: "nombre",
		Fields: []Field{
			{Name: "nombre", Type: String, Required: true},
			{Name: "descripcion", Type: String, Required: true},
			{Name: "main_area", Type: Enum, Enum: models.MainAreas},
			{Name: "videos", Type: StringList},
			{Name: "sub_areas", Type: StringList},
		},
	},
	Escuelas: {
		Kind:       Escuelas,
		Collection: "escuelas",
		Fields: []Field{
			{Name: "nombre", Type: String, Required: true},
			{Name: "ubicacion", Type: ObjectList, Required: true, Elem: &coordenadas},
			{Name: "type", Type: Enum, Required: true, Enum: models.SchoolTypes},
			{Name: "carreras", Type: StringList, Required: true},
			{Name: "costo", Type: Number, Required: true, Min: zero()},
		},
	},
	Subareas: {
		Kind:       Subareas,
		Collection: "subareas",
		Fields: []Field{
			{Name: "nombre", Type: String, Required: true},
			{Name: "introduccion", Type: String, Required: true},
			{Name: "descripcion", Type: String, Required: true},
			{Name: "carrera", Type: String, Required: true},
			{Name: "lecciones", Type: ObjectList, Required: true, Elem: &leccion},
			{Name: "videos_escuela", Type: StringList, Required: true},
			{Name: "progreso", Type: Int, Informational: true},
			{Name: "total_lecciones", Type: Int, Informational: true},
		},
	},
	Voluntariados: {
		Kind:       Voluntariados,
		Collection: "voluntariados",
		Fields: []Field{
			{Name: "carrera", Type: String, Required: true},
			{Name: "titulo", Type: String, Required: true},
			{Name: "descripcion", Type: String, Required: true},
			{Name: "ubicacion", Type: String},
			{Name: "salario", Type: Number},
			{Name: "permalink", Type: String},
		},
	},
	Formularios: {
		Kind:       Formularios,
		Collection: "formularios",
		Fields: []Field{
			{Name: "nombre", Type: String, Required: true},
			{Name: "subarea", Type: String, Required: true},
			{Name: "descripcion", Type: String},
			{Name: "preguntas", Type: Opaque},
			{Name: "respuestas", Type: Opaque},
			{Name: "resultados", Type: Number, Nullable: true},
		},
	},
	Mapas: {
		Kind:       Mapas,
		Collection: "mapa_curricular",
		Fields: []Field{
			{Name: "nombre", Type: String, Required: true},
			{Name: "descripcion", Type: String, Required: true},
			{Name: "carrera", Type: String, Required: true},
		},
	},
	Usuarios: {
		Kind:       Usuarios,
		Collection: "users",
		NaturalKey: "email",
		Fields: []Field{
			{Name: "first_name", Type: String, Required: true},
			{Name: "last_name", Type: String, Required: true},
			{Name: "email", Type: String, Required: true, Format: "email"},
			{Name: "ubicacion", Type: String},
			{Name: "discapacidad", Type: String},
			{Name: "carrera", Type: String},
			{Name: "main_area", Type: Enum, Enum: models.MainAreas},
			{Name: "intereses", Type: StringList},
			{Name: "zona", Type: Bool},
		},
	},
}

// For returns the schema of kind.
func For(kind Kind) (Schema, bool) {
	s, ok := registry[kind]
	return s, ok
}

// Kinds lists every registered kind in name order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKind maps a URL segment to a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := registry[k]
	return k, ok
}
