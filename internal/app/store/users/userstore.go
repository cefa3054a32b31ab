package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/system/normalize"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Placeholder stored for profile fields an OAuth provider does not supply.
const Unknown = "NA"

// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindIDByEmail returns the id of the user with email, if any.
func (s *Store) FindIDByEmail(ctx context.Context, email string) (primitive.ObjectID, bool, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return doc.ID, true, nil
}

// Create inserts a new user after normalizing name and email fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	if u.Intereses == nil {
		u.Intereses = []string{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Patch overwrites the non-empty fields of u. Zona is written only when
// setZona is true since false is a meaningful value. Email never changes.
// Returns mongo.ErrNoDocuments when id no longer exists.
func (s *Store) Patch(ctx context.Context, id primitive.ObjectID, u models.User, setZona bool) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if v := normalize.Name(u.FirstName); v != "" {
		set["first_name"] = v
	}
	if v := normalize.Name(u.LastName); v != "" {
		set["last_name"] = v
	}
	if u.Ubicacion != "" {
		set["ubicacion"] = u.Ubicacion
	}
	if u.Discapacidad != "" {
		set["discapacidad"] = u.Discapacidad
	}
	if u.Carrera != "" {
		set["carrera"] = u.Carrera
	}
	if u.MainArea != "" {
		set["main_area"] = u.MainArea
	}
	if len(u.Intereses) > 0 {
		set["intereses"] = u.Intereses
	}
	if setZona {
		set["zona"] = u.Zona
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

// FindOrCreateByEmail returns the user with u.Email, creating it from u when
// absent. Blank profile fields of a new user are stored as Unknown. created
// reports whether an insert happened.
func (s *Store) FindOrCreateByEmail(ctx context.Context, u models.User) (models.User, bool, error) {
	existing, err := s.GetByEmail(ctx, u.Email)
	if err == nil {
		return *existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, false, err
	}

	for _, f := range []*string{&u.FirstName, &u.LastName, &u.Ubicacion, &u.Discapacidad, &u.Carrera} {
		if normalize.Name(*f) == "" {
			*f = Unknown
		}
	}
	created, err := s.Create(ctx, u)
	if err == ErrDuplicateEmail {
		// Lost a race with a concurrent sign-in; the other insert wins.
		existing, gerr := s.GetByEmail(ctx, u.Email)
		if gerr != nil {
			return models.User{}, false, gerr
		}
		return *existing, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return created, true, nil
}
