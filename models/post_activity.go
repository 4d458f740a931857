package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostActivity is one post lifecycle event as recorded by the activity
// consumer. EventID is unique, so redelivered events are stored once.
// Collection: post_activity
type PostActivity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventID    string             `bson:"eventId" json:"eventId"`
	Type       string             `bson:"type" json:"type"`
	PostID     string             `bson:"postId" json:"postId"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Category   string             `bson:"category,omitempty" json:"category,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`
	OccurredAt time.Time          `bson:"occurredAt" json:"occurredAt"`
	RecordedAt time.Time          `bson:"recordedAt" json:"recordedAt"`
}
