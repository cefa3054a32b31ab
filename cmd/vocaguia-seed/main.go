// Command vocaguia-seed loads a JSON or YAML file of records through the bulk
// ingest engine, the same path used by POST /api/bulk/{kind}.
//
//	vocaguia-seed -kind carreras -file carreras.json -dedupe nombre
//	vocaguia-seed -kind escuelas -file escuelas.yaml -dry-run
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/store/sinks"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	kindFlag := flag.String("kind", "", "record kind: "+kindList())
	file := flag.String("file", "", "JSON or YAML file holding an array of records")
	dedupeBy := flag.String("dedupe", "", "drop later records repeating this field (case-insensitive)")
	dryRun := flag.Bool("dry-run", false, "validate only; nothing is written")
	mongoURI := flag.String("mongo_uri", envOr("VOCAGUIA_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	mongoDB := flag.String("mongo_database", envOr("VOCAGUIA_MONGO_DATABASE", "vocaguia"), "MongoDB database name")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *kindFlag, *file, *dedupeBy, *dryRun, *mongoURI, *mongoDB, *timeout); err != nil {
		logger.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, kindName, file, dedupeBy string, dryRun bool, uri, dbName string, timeout time.Duration) error {
	kind, ok := schema.ParseKind(kindName)
	if !ok {
		return fmt.Errorf("unknown kind %q (want one of %s)", kindName, kindList())
	}
	if file == "" {
		return fmt.Errorf("-file is required")
	}

	items, err := loadFile(file)
	if err != nil {
		return err
	}
	before := len(items)
	if dedupeBy != "" {
		items = dedupeItems(items, dedupeBy)
	}
	logger.Info("records loaded",
		zap.String("file", file),
		zap.String("kind", string(kind)),
		zap.Int("read", before),
		zap.Int("kept", len(items)))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var engine *bulk.Engine
	if dryRun {
		engine = bulk.NewEngine(discardSinks(), logger)
	} else {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName("vocaguia-seed"))
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		engine = bulk.NewEngine(sinks.New(client.Database(dbName)), logger)
	}

	res, err := engine.Run(ctx, kind, items)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Body()); err != nil {
		return err
	}
	if res.Status() == bulk.Failure && len(items) > 0 {
		return fmt.Errorf("every record failed")
	}
	return nil
}

// discardSinks registers bulk.Discard for every kind.
func discardSinks() map[schema.Kind]bulk.Sink {
	m := make(map[schema.Kind]bulk.Sink)
	for _, k := range schema.Kinds() {
		m[k] = bulk.Discard{}
	}
	return m
}

func kindList() string {
	kinds := schema.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
