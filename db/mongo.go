package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-server/config"
	"blog-server/logger"
)

const (
	PostsCollection        = "posts"
	CategoriesCollection   = "categories"
	PostActivityCollection = "post_activity"
)

// Mongo owns the client connection. It is safe for concurrent use and is
// handed to repositories explicitly instead of living in package state.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect opens the client, pings the primary and ensures indexes.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().ApplyURI(cfg.URI).SetTimeout(timeout)
	cl, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	// Ping to verify connection
	if err := cl.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	m := &Mongo{Client: cl, Database: cl.Database(cfg.Database)}
	if err := EnsureIndexes(pingCtx, m.Database); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ensure indexes: %w", err)
	}
	logger.Log.Infof("MongoDB connected (database=%s) and indexes ensured", cfg.Database)
	return m, nil
}

// Ping reports whether the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Database.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	// categories: unique name
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_name").SetUnique(true),
		}
		if _, err := d.Collection(CategoriesCollection).Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// posts: listing is filtered by status and sorted by createdAt by default
	{
		if _, err := d.Collection(PostsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_status_created_at"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}},
				Options: options.Index().SetName("idx_category"),
			},
			{
				Keys:    bson.D{{Key: "tags", Value: 1}},
				Options: options.Index().SetName("idx_tags"),
			},
		}); err != nil {
			return err
		}
	}
	// post_activity: one document per event, newest first per post
	{
		if _, err := d.Collection(PostActivityCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "eventId", Value: 1}},
				Options: options.Index().SetName("uniq_event_id").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "occurredAt", Value: -1}},
				Options: options.Index().SetName("idx_post_occurred_at"),
			},
		}); err != nil {
			return err
		}
	}
	return nil
}
