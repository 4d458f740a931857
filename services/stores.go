package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/models"
	"blog-server/repositories"
)

// PostStore is the post persistence used by the listing and mutation
// services. *repositories.PostRepository implements it.
type PostStore interface {
	Insert(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	List(ctx context.Context, f repositories.PostFilter) ([]models.Post, int64, error)
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DistinctCategories(ctx context.Context, status string) ([]string, error)
}

// CategoryStore is implemented by *repositories.CategoryRepository.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Insert(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

var (
	_ PostStore     = (*repositories.PostRepository)(nil)
	_ CategoryStore = (*repositories.CategoryRepository)(nil)
	_ ActivityStore = (*repositories.PostActivityRepository)(nil)
)

// ActivityStore is implemented by *repositories.PostActivityRepository.
type ActivityStore interface {
	Record(ctx context.Context, a *models.PostActivity) (bool, error)
	ListByPost(ctx context.Context, postID string, limit int64) ([]models.PostActivity, error)
}
