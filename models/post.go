package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

const (
	DefaultAuthor   = "Anonymous"
	DefaultCategory = "General"
)

// Post represents a blog article
// Collection: posts
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title" validate:"required,max=200"`
	Content   string             `bson:"content" json:"content" validate:"required"`
	Excerpt   string             `bson:"excerpt" json:"excerpt" validate:"max=300"`
	Author    string             `bson:"author" json:"author" validate:"required"`
	Category  string             `bson:"category" json:"category" validate:"required"`
	Tags      []string           `bson:"tags" json:"tags"`
	Status    string             `bson:"status" json:"status" validate:"oneof=draft published"`
	ViewCount int64              `bson:"viewCount" json:"viewCount" validate:"min=0"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
