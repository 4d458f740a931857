package services

import (
	"context"
	"strings"
	"time"

	"blog-server/dto"
	"blog-server/eventbus"
	"blog-server/events"
	"blog-server/logger"
	"blog-server/models"
)

const publishTimeout = 3 * time.Second

// PostMutationService validates and normalizes post payloads before writing
// them, and announces every successful write on the event bus.
type PostMutationService struct {
	posts PostStore
	bus   eventbus.EventBus
	topic eventbus.Topic
}

// NewPostMutationService wires the service. A nil bus disables events.
func NewPostMutationService(posts PostStore, bus eventbus.EventBus, topic eventbus.Topic) *PostMutationService {
	if bus == nil {
		bus = eventbus.NoopEventBus{}
	}
	return &PostMutationService{posts: posts, bus: bus, topic: topic}
}

// Create stores a new post. Title and content are required; author,
// category and status fall back to Anonymous, General and draft.
func (s *PostMutationService) Create(ctx context.Context, in dto.PostPayload) (*dto.PostDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, newValidationError("Post title is required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, newValidationError("Post content is required")
	}

	tags := []string{}
	if in.Tags.Set {
		tags = dto.CleanTags(in.Tags.Values)
	}

	p := &models.Post{
		Title:    title,
		Content:  content,
		Excerpt:  strings.TrimSpace(in.Excerpt),
		Author:   orDefault(in.Author, models.DefaultAuthor),
		Category: orDefault(in.Category, models.DefaultCategory),
		Tags:     tags,
		Status:   orDefault(in.Status, models.PostStatusDraft),
	}
	if p.Excerpt == "" {
		p.Excerpt = DeriveExcerpt(p.Content)
	}

	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := s.posts.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, events.PostCreated, *p)
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// Update applies a partial update. Fields that are absent or blank keep
// their stored value.
func (s *PostMutationService) Update(ctx context.Context, hexID string, in dto.PostPayload) (*dto.PostDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Title = orDefault(in.Title, existing.Title)
	next.Content = orDefault(in.Content, existing.Content)
	next.Author = orDefault(in.Author, existing.Author)
	next.Category = orDefault(in.Category, existing.Category)
	next.Status = orDefault(in.Status, existing.Status)
	if in.Tags.Set {
		next.Tags = dto.CleanTags(in.Tags.Values)
	}

	switch excerpt := strings.TrimSpace(in.Excerpt); {
	case excerpt != "":
		next.Excerpt = excerpt
	case next.Content != existing.Content && (existing.Excerpt == "" || existing.Excerpt == DeriveExcerpt(existing.Content)):
		// the stored excerpt was derived, keep it in step with the content
		next.Excerpt = DeriveExcerpt(next.Content)
	}

	if err := validateStruct(&next); err != nil {
		return nil, err
	}
	updated, err := s.posts.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.PostUpdated, *updated)
	d := dto.NewPostDTO(*updated)
	return &d, nil
}

// Delete removes a post permanently.
func (s *PostMutationService) Delete(ctx context.Context, hexID string) error {
	id, err := parseID(hexID)
	if err != nil {
		return err
	}
	if err := s.posts.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.PostDeleted, models.Post{ID: id})
	return nil
}

// publish is best effort: the write already happened, so failures are only logged.
func (s *PostMutationService) publish(ctx context.Context, t events.EventType, p models.Post) {
	evt := events.NewPostEvent(t, p)
	msg, err := eventbus.NewJSONEvent(evt.ID, string(evt.Type), evt)
	if err != nil {
		logger.ErrorWithFields("encode post event", logger.Fields{"post_id": evt.PostID, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.bus.Publish(ctx, s.topic.Base(), msg); err != nil {
		logger.WarnWithFields("publish post event failed", logger.Fields{
			"event_type": string(t),
			"post_id":    evt.PostID,
			"error":      err.Error(),
		})
	}
}

func orDefault(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}
