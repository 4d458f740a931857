package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-server/db"
	"blog-server/models"
)

type PostActivityRepository struct {
	col *mongo.Collection
}

func NewPostActivityRepository(d *mongo.Database) *PostActivityRepository {
	return &PostActivityRepository{col: d.Collection(db.PostActivityCollection)}
}

// Record stores an activity entry. An entry whose EventID is already stored
// is a redelivery and is skipped: the returned bool is false in that case.
func (r *PostActivityRepository) Record(ctx context.Context, a *models.PostActivity) (bool, error) {
	if a.RecordedAt.IsZero() {
		a.RecordedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, a)
	if err == nil {
		return true, nil
	}
	if errors.Is(translate(err), ErrDuplicateKey) {
		return false, nil
	}
	return false, fmt.Errorf("insert post activity: %w", err)
}

// ListByPost returns the newest entries of one post first.
func (r *PostActivityRepository) ListByPost(ctx context.Context, postID string, limit int64) ([]models.PostActivity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find post activity: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.PostActivity{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
