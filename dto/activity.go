package dto

import (
	"time"

	"github.com/samber/lo"

	"blog-server/models"
)

// PostActivityDTO is one recorded lifecycle event of a post.
type PostActivityDTO struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type" example:"post.updated"`
	PostID     string    `json:"postId"`
	Title      string    `json:"title,omitempty"`
	Category   string    `json:"category,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewPostActivityDTOs(as []models.PostActivity) []PostActivityDTO {
	return lo.Map(as, func(a models.PostActivity, _ int) PostActivityDTO {
		return PostActivityDTO{
			EventID:    a.EventID,
			Type:       a.Type,
			PostID:     a.PostID,
			Title:      a.Title,
			Category:   a.Category,
			Status:     a.Status,
			OccurredAt: a.OccurredAt,
		}
	})
}

type PostActivityListResponseDTO struct {
	Success bool              `json:"success" example:"true"`
	Data    []PostActivityDTO `json:"data"`
}
