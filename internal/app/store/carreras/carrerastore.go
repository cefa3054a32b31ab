// internal/app/store/carreras/carrerastore.go
package carrerastore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/system/htmlsanitize"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateCarrera = errors.New("a carrera with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("carreras")}
}

// Create inserts a new major. Nil lists are stored as empty arrays.
func (s *Store) Create(ctx context.Context, c models.Carrera) (models.Carrera, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NombreCI = text.Fold(c.Nombre)
	c.Descripcion = htmlsanitize.Clean(c.Descripcion)
	if c.Videos == nil {
		c.Videos = []string{}
	}
	if c.SubAreas == nil {
		c.SubAreas = []string{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Carrera{}, ErrDuplicateCarrera
		}
		return models.Carrera{}, err
	}
	return c, nil
}

// FindIDByNombreCI returns the id of the major whose folded name is key.
func (s *Store) FindIDByNombreCI(ctx context.Context, key string) (primitive.ObjectID, bool, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := s.c.FindOne(ctx, bson.M{"nombre_ci": key},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return doc.ID, true, nil
}

// Patch overwrites the fields of c that are non-empty and refreshes UpdatedAt.
// The stored nombre is never changed. Returns mongo.ErrNoDocuments when id
// no longer exists.
func (s *Store) Patch(ctx context.Context, id primitive.ObjectID, c models.Carrera) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if c.Descripcion != "" {
		set["descripcion"] = htmlsanitize.Clean(c.Descripcion)
	}
	if c.MainArea != "" {
		set["main_area"] = c.MainArea
	}
	if len(c.Videos) > 0 {
		set["videos"] = c.Videos
	}
	if len(c.SubAreas) > 0 {
		set["sub_areas"] = c.SubAreas
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByNombre looks up a major by case-insensitive name.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByNombre(ctx context.Context, nombre string) (models.Carrera, error) {
	var c models.Carrera
	if err := s.c.FindOne(ctx, bson.M{"nombre_ci": text.Fold(nombre)}).Decode(&c); err != nil {
		return models.Carrera{}, err
	}
	return c, nil
}

// NamesByArea returns the names of the majors in area, sorted by name.
// A blank area lists every major.
func (s *Store) NamesByArea(ctx context.Context, area string) ([]string, error) {
	filter := bson.M{}
	if area != "" {
		filter["main_area"] = area
	}
	cur, err := s.c.Find(ctx, filter, options.Find().
		SetProjection(bson.M{"nombre": 1}).
		SetSort(bson.D{{Key: "nombre_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := []string{}
	for cur.Next(ctx) {
		var doc struct {
			Nombre string `bson:"nombre"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		names = append(names, doc.Nombre)
	}
	return names, cur.Err()
}

// SubareaRefs is the slice of a major the score aggregation needs.
type SubareaRefs struct {
	Nombre   string   `bson:"nombre"`
	SubAreas []string `bson:"sub_areas"`
}

// ListSubareaRefs returns every major's name and sub-area names in storage order.
func (s *Store) ListSubareaRefs(ctx context.Context) ([]SubareaRefs, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"nombre": 1, "sub_areas": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []SubareaRefs
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
