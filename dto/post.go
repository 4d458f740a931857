package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"blog-server/models"
)

// PostDTO is the wire form of a post. ID is the ObjectID hex string.
type PostDTO struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Status    string    `json:"status"`
	ViewCount int64     `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostDTO{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Author:    p.Author,
		Category:  p.Category,
		Tags:      tags,
		Status:    p.Status,
		ViewCount: p.ViewCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPostDTOs maps a slice of posts, never returning nil.
func NewPostDTOs(posts []models.Post) []PostDTO {
	return lo.Map(posts, func(p models.Post, _ int) PostDTO { return NewPostDTO(p) })
}

// PostPayload is the body of POST /api/posts and PUT /api/posts/:id.
// Empty strings mean "not supplied".
type PostPayload struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     TagInput `json:"tags" swaggertype:"array,string"`
	Status   string   `json:"status"`
}

// TagInput accepts tags either as a comma separated string or as a JSON
// array of strings.
type TagInput struct {
	// Set is false when the field was absent, null or an empty string.
	Set    bool
	Values []string
}

// Tags builds a TagInput from an already structured list.
func Tags(values ...string) TagInput {
	return TagInput{Set: true, Values: values}
}

// UnmarshalJSON accepts a comma separated string or an array. Both forms are
// trimmed per entry and empty entries are dropped, so stored tags are never
// blank.
func (t *TagInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TagInput{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*t = TagInput{}
			return nil
		}
		*t = TagInput{Set: true, Values: SplitTags(s)}
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("tags must be a string or an array of strings: %w", err)
		}
		*t = TagInput{Set: true, Values: CleanTags(values)}
		return nil
	default:
		return fmt.Errorf("tags must be a string or an array of strings")
	}
}

func (t TagInput) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return []byte("null"), nil
	}
	values := t.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

// SplitTags splits a comma separated list, trimming entries and dropping
// empty ones. Duplicates are kept in order.
func SplitTags(s string) []string {
	return CleanTags(strings.Split(s, ","))
}

// CleanTags trims every tag and drops the empty ones.
func CleanTags(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Filter(trimmed, func(v string, _ int) bool { return v != "" })
}
