package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-server/db"
	"blog-server/models"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(d *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: d.Collection(db.CategoriesCollection)}
}

// List returns all categories sorted by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.Category{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Insert stores a new category. ErrDuplicateKey when the name is taken.
func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// Update sets name and description and returns the stored result.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Category
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": c.ID}, bson.M{
		"$set": bson.M{
			"name":        c.Name,
			"description": c.Description,
			"updatedAt":   time.Now().UTC(),
		},
	}, opts).Decode(&out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *CategoryRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
