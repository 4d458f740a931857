package dto

import (
	"time"

	"github.com/samber/lo"

	"blog-server/models"
)

type CategoryDTO struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCategoryDTO(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategoryDTOs(cs []models.Category) []CategoryDTO {
	return lo.Map(cs, func(c models.Category, _ int) CategoryDTO { return NewCategoryDTO(c) })
}

// CategoryPayload is the body of POST/PUT /api/categories.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
