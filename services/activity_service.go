package services

import (
	"context"
	"fmt"

	"blog-server/eventbus"
	"blog-server/events"
	"blog-server/logger"
	"blog-server/models"
)

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// ActivityService turns consumed post events into activity records.
type ActivityService struct {
	store ActivityStore
}

func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

// HandleEvent is an eventbus.EventHandler. Undecodable events, unknown event
// types and events without a post id are rejected as permanent so they go to
// the dead letter topic without retries. Store failures are retried.
func (s *ActivityService) HandleEvent(ctx context.Context, evt eventbus.Event) error {
	pe, err := eventbus.DecodeJSON[events.PostEvent](evt)
	if err != nil {
		return eventbus.Permanent(err)
	}
	switch pe.Type {
	case events.PostCreated, events.PostUpdated, events.PostDeleted:
	default:
		return eventbus.Permanent(fmt.Errorf("unknown post event type %q", pe.Type))
	}
	if pe.PostID == "" {
		return eventbus.Permanent(fmt.Errorf("event %s has no post id", pe.ID))
	}

	eventID := pe.ID
	if eventID == "" {
		eventID = evt.ID
	}
	stored, err := s.store.Record(ctx, &models.PostActivity{
		EventID:    eventID,
		Type:       string(pe.Type),
		PostID:     pe.PostID,
		Title:      pe.Title,
		Category:   pe.Category,
		Status:     pe.Status,
		OccurredAt: pe.Timestamp,
	})
	if err != nil {
		return err
	}

	fields := logger.Fields{"event_id": eventID, "event_type": string(pe.Type), "post_id": pe.PostID}
	if !stored {
		logger.DebugWithFields("duplicate post event ignored", fields)
		return nil
	}
	logger.InfoWithFields("post activity recorded", fields)
	return nil
}

// ListForPost returns the recorded events of one post, newest first.
// limit below 1 means DefaultActivityLimit.
func (s *ActivityService) ListForPost(ctx context.Context, hexID string, limit int) ([]models.PostActivity, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	return s.store.ListByPost(ctx, id.Hex(), int64(limit))
}
