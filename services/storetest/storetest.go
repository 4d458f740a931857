// Package storetest provides in-memory stores and a recording event bus for
// tests of the service and HTTP layers.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/eventbus"
	"blog-server/models"
	"blog-server/repositories"
)

// PostStore is an in-memory services.PostStore with the filtering semantics
// of repositories.BuildPostQuery.
type PostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
	clock time.Time
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts: map[primitive.ObjectID]models.Post{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *PostStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *PostStore) Insert(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = m.tick()
	p.UpdatedAt = p.CreatedAt
	m.posts[p.ID] = clonePost(*p)
	return nil
}

func (m *PostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (m *PostStore) List(_ context.Context, f repositories.PostFilter) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := models.PostStatusPublished
	if f.Status != nil {
		status = *f.Status
	}
	needle := strings.ToLower(f.Search)

	var matched []models.Post
	for _, p := range m.posts {
		if status != "" && status != repositories.FilterAll && p.Status != status {
			continue
		}
		if f.Category != "" && f.Category != repositories.FilterAll && p.Category != f.Category {
			continue
		}
		if needle != "" && !containsFold(p, needle) {
			continue
		}
		matched = append(matched, clonePost(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := int(f.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(f.Take())
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func containsFold(p models.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func (m *PostStore) IncrementViewCount(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.ViewCount++
	m.posts[id] = p
	out := clonePost(p)
	return &out, nil
}

func (m *PostStore) Update(_ context.Context, p *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.posts[p.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cur.Title, cur.Content, cur.Excerpt = p.Title, p.Content, p.Excerpt
	cur.Author, cur.Category, cur.Status = p.Author, p.Category, p.Status
	cur.Tags = append([]string{}, p.Tags...)
	cur.UpdatedAt = m.tick()
	m.posts[p.ID] = cur
	out := clonePost(cur)
	return &out, nil
}

func (m *PostStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostStore) DistinctCategories(_ context.Context, status string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]struct{}{}
	for _, p := range m.posts {
		if p.Status == status {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func clonePost(p models.Post) models.Post {
	p.Tags = append([]string{}, p.Tags...)
	return p
}

// CategoryStore enforces name uniqueness like the uniq_name index.
type CategoryStore struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: map[primitive.ObjectID]models.Category{}}
}

func (m *CategoryStore) nameTaken(name string, except primitive.ObjectID) bool {
	for id, c := range m.categories {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (m *CategoryStore) List(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *CategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (m *CategoryStore) Insert(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(c.Name, primitive.NilObjectID) {
		return repositories.ErrDuplicateKey
	}
	c.ID = primitive.NewObjectID()
	m.categories[c.ID] = *c
	return nil
}

func (m *CategoryStore) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	if m.nameTaken(c.Name, c.ID) {
		return nil, repositories.ErrDuplicateKey
	}
	m.categories[c.ID] = *c
	out := *c
	return &out, nil
}

func (m *CategoryStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// Bus records published events. A non-nil Err fails every publish.
type Bus struct {
	mu     sync.Mutex
	Err    error
	topics []string
	events []eventbus.Event
}

func (b *Bus) Publish(_ context.Context, topic string, evt eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.topics = append(b.topics, topic)
	b.events = append(b.events, evt)
	return nil
}

func (b *Bus) Close() {}

// Len returns the number of stored posts.
func (m *PostStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts)
}

// Events returns the published events in order.
func (b *Bus) Events() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.Event(nil), b.events...)
}

// Topics returns the topic of every published event.
func (b *Bus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.topics...)
}

// ActivityStore is an in-memory services.ActivityStore keyed by event id.
// A non-nil Err fails every call.
type ActivityStore struct {
	mu      sync.Mutex
	Err     error
	entries []models.PostActivity
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (m *ActivityStore) Record(_ context.Context, a *models.PostActivity) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	for _, e := range m.entries {
		if e.EventID == a.EventID {
			return false, nil
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.RecordedAt.IsZero() {
		a.RecordedAt = time.Now().UTC()
	}
	m.entries = append(m.entries, *a)
	return true, nil
}

func (m *ActivityStore) ListByPost(_ context.Context, postID string, limit int64) ([]models.PostActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.PostActivity{}
	for _, e := range m.entries {
		if e.PostID == postID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of recorded entries.
func (m *ActivityStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
