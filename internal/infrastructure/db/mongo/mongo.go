package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// newID allocates a document id. Ids are stored as hex strings so the
// domain layer never touches driver types.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// sortOrFallback resolves a caller-supplied sort field against the allowed
// set; anything unknown (including empty) sorts by fallback instead.
func sortOrFallback(field string, allowed map[string]string, fallback string) string {
	if mapped, ok := allowed[field]; ok {
		return mapped
	}
	return fallback
}

// pageOpts builds find options for a sorted, paginated query. page is
// 1-based and assumed normalised by the service layer.
func pageOpts(sortField string, desc bool, page, limit int) *options.FindOptions {
	order := 1
	if desc {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: order}})
	if limit > 0 {
		opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
	}
	return opts
}

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

// inTransaction runs fn inside a single multi-document transaction.
func inTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
