// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Every collection's set is reconciled
independently and problems are aggregated so startup can fail with the
whole picture.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, coll := range Collections() {
		if err := ensureIndexSet(ctx, db.Collection(coll), desired[coll]()); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Collections lists the collections EnsureAll manages, in the order it visits them.
func Collections() []string {
	return []string{"carreras", "escuelas", "subareas", "voluntariados", "formularios", "mapa_curricular", "users", "oauth_states"}
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

var desired = map[string]func() []mongo.IndexModel{
	// nombre_ci is the bulk upsert key.
	"carreras": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			unique("uniq_carreras_nombre_ci", bson.D{{Key: "nombre_ci", Value: 1}}),
			idx("idx_carreras_main_area_nombre", bson.D{{Key: "main_area", Value: 1}, {Key: "nombre_ci", Value: 1}}),
		}
	},
	"escuelas": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			idx("idx_escuelas_carreras_ci", bson.D{{Key: "carreras_ci", Value: 1}}),
		}
	},
	"subareas": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			idx("idx_subareas_nombre_ci", bson.D{{Key: "nombre_ci", Value: 1}}),
			idx("idx_subareas_carrera_ci", bson.D{{Key: "carrera_ci", Value: 1}}),
		}
	},
	"voluntariados": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			idx("idx_voluntariados_carrera_ci", bson.D{{Key: "carrera_ci", Value: 1}}),
		}
	},
	// subarea_ci drives both the form lookup and the score aggregation.
	"formularios": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			idx("idx_formularios_subarea_ci", bson.D{{Key: "subarea_ci", Value: 1}}),
		}
	},
	"mapa_curricular": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			idx("idx_mapa_carrera_ci", bson.D{{Key: "carrera_ci", Value: 1}}),
			idx("idx_mapa_nombre_ci", bson.D{{Key: "nombre_ci", Value: 1}}),
		}
	},
	// email is stored lower-cased, so a plain unique index is case-insensitive.
	"users": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			unique("uniq_users_email", bson.D{{Key: "email", Value: 1}}),
		}
	},
	"oauth_states": func() []mongo.IndexModel {
		return []mongo.IndexModel{
			unique("uniq_oauth_state", bson.D{{Key: "state", Value: 1}}),
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("ttl_oauth_expires_at").SetExpireAfterSeconds(0),
			},
		}
	},
}

/* -------------------------------------------------------------------------- */
/* Reconcile one collection's desired indexes                                 */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name               string `bson:"name"`
	Key                bson.D `bson:"key"`
	Unique             *bool  `bson:"unique,omitempty"`
	ExpireAfterSeconds *int32 `bson:"expireAfterSeconds,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func ttlVal(v *int32) int32 {
	if v == nil {
		return -1
	}
	return *v
}

// sameOptions compares the options we care about: uniqueness and TTL.
func sameOptions(m mongo.IndexModel, ex existingIndex) bool {
	var wantUnique bool
	wantTTL := int32(-1)
	if m.Options != nil {
		wantUnique = boolVal(m.Options.Unique)
		if m.Options.ExpireAfterSeconds != nil {
			wantTTL = *m.Options.ExpireAfterSeconds
		}
	}
	return wantUnique == boolVal(ex.Unique) && wantTTL == ttlVal(ex.ExpireAfterSeconds)
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet creates missing indexes and recreates ones whose name or
// options drifted. Indexes not in models are left alone.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A missing collection lists as an error on some servers; create from scratch.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if sameOptions(m, ex) && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			zap.L().Info("recreating index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.String("keys", sig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on %s (duplicates present)", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isDuplicateKeyErr(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}
