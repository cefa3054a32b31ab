// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and attaches $jsonSchema
// validators. Record collections get a validator derived from the bulk
// schema registry so the database and the ingest path agree on shape.
// Servers without collMod support (some DocumentDB versions) are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, validator bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if validator == nil {
			return
		}
		if err := setValidator(ctx, db, coll, validator); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	for _, k := range schema.Kinds() {
		s, _ := schema.For(k)
		ensure(s.Collection, FromSchema(s))
	}
	ensure("oauth_states", oauthStatesSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// FromSchema renders s as a $jsonSchema validator document.
func FromSchema(s schema.Schema) bson.M {
	return bson.M{"$jsonSchema": objectSchema(s)}
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func objectSchema(s schema.Schema) bson.M {
	required := bson.A{}
	props := bson.M{}
	for _, f := range s.Fields {
		if f.Required {
			required = append(required, f.Name)
		}
		props[f.Name] = fieldSchema(f)
	}
	out := bson.M{"bsonType": "object", "properties": props}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func fieldSchema(f schema.Field) bson.M {
	var p bson.M
	switch f.Type {
	case schema.String:
		if f.Required {
			p = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
		} else {
			p = bson.M{"bsonType": "string"}
		}
	case schema.Number:
		p = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}}
		if f.Min != nil {
			p["minimum"] = *f.Min
		}
	case schema.Int:
		p = bson.M{"bsonType": bson.A{"int", "long", "double"}}
	case schema.Bool:
		p = bson.M{"bsonType": "bool"}
	case schema.Enum:
		enum := bson.A{}
		for _, v := range f.Enum {
			enum = append(enum, v)
		}
		p = bson.M{"enum": enum}
	case schema.StringList:
		p = bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}}
		if f.Required {
			p["minItems"] = 1
		}
	case schema.ObjectList:
		p = bson.M{"bsonType": "array"}
		if f.Elem != nil {
			p["items"] = objectSchema(*f.Elem)
		}
		if f.Required {
			p["minItems"] = 1
		}
	case schema.Opaque:
		p = bson.M{"bsonType": "array"}
	default:
		p = bson.M{}
	}
	if f.Nullable {
		if bt, ok := p["bsonType"].(bson.A); ok {
			p["bsonType"] = append(bt, "null")
		} else if bt, ok := p["bsonType"].(string); ok {
			p["bsonType"] = bson.A{bt, "null"}
		}
	}
	return p
}

func oauthStatesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"state", "verifier", "expires_at"},
			"properties": bson.M{
				"state":      nonBlank,
				"verifier":   nonBlank,
				"expires_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

/* ---------------------- collection helpers ---------------------- */

// collectionExists uses ListCollectionNames so we only log "created" when we did.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure name exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Debug("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}
