package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-server/db"
	"blog-server/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(d *mongo.Database) *PostRepository {
	return &PostRepository{col: d.Collection(db.PostsCollection)}
}

// Insert inserts a new post document and sets its ID and timestamps.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// FindByID returns a post by its ObjectID
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List returns one page of posts matching the filter and the total number of
// matches without paging.
func (r *PostRepository) List(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	filter, sortDoc := BuildPostQuery(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	findOpts := options.Find().SetSort(sortDoc).SetSkip(f.Skip()).SetLimit(f.Take())
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.Post{}
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, 0, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// IncrementViewCount atomically adds one to viewCount and returns the
// updated post.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"viewCount": 1},
	}, opts).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Update overwrites the editable fields of p and returns the stored result.
// viewCount and createdAt are never touched.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, bson.M{
		"$set": bson.M{
			"title":     p.Title,
			"content":   p.Content,
			"excerpt":   p.Excerpt,
			"author":    p.Author,
			"category":  p.Category,
			"tags":      tags,
			"status":    p.Status,
			"updatedAt": time.Now().UTC(),
		},
	}, opts).Decode(&out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// DeleteByID removes a post. ErrNotFound when nothing was deleted.
func (r *PostRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctCategories returns the sorted distinct category values of posts
// with the given status.
func (r *PostRepository) DistinctCategories(ctx context.Context, status string) ([]string, error) {
	values, err := r.col.Distinct(ctx, "category", bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}
