package events

import (
	"time"

	"github.com/google/uuid"

	"blog-server/models"
)

// EventType names a post lifecycle event.
type EventType string

const (
	PostCreated EventType = "post.created"
	PostUpdated EventType = "post.updated"
	PostDeleted EventType = "post.deleted"
)

const (
	eventSource  = "blog-server"
	eventVersion = "1.0"
)

// BaseEvent holds the fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// PostEvent is emitted after a post was created, updated or deleted.
// Deleted events only carry PostID.
type PostEvent struct {
	BaseEvent
	PostID   string   `json:"post_id"`
	Title    string   `json:"title,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Status   string   `json:"status,omitempty"`
}

func NewPostEvent(t EventType, p models.Post) PostEvent {
	evt := PostEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      t,
			Timestamp: time.Now().UTC(),
			Source:    eventSource,
			Version:   eventVersion,
		},
		PostID: p.ID.Hex(),
	}
	if t != PostDeleted {
		evt.Title = p.Title
		evt.Category = p.Category
		evt.Tags = p.Tags
		evt.Status = p.Status
	}
	return evt
}
