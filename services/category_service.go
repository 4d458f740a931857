package services

import (
	"context"
	"strings"

	"blog-server/dto"
	"blog-server/models"
)

// CategoryService manages the categories collection.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryDTO, error) {
	items, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryDTOs(items), nil
}

func (s *CategoryService) Get(ctx context.Context, hexID string) (*dto.CategoryDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewCategoryDTO(*c)
	return &d, nil
}

// Create stores a new category. ErrDuplicateKey when the name exists.
func (s *CategoryService) Create(ctx context.Context, in dto.CategoryPayload) (*dto.CategoryDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newValidationError("Category name is required")
	}
	c := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := validateStruct(c); err != nil {
		return nil, err
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	d := dto.NewCategoryDTO(*c)
	return &d, nil
}

// Update renames or redescribes a category. Blank fields keep their value.
func (s *CategoryService) Update(ctx context.Context, hexID string, in dto.CategoryPayload) (*dto.CategoryDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Name = orDefault(in.Name, existing.Name)
	next.Description = orDefault(in.Description, existing.Description)
	if err := validateStruct(&next); err != nil {
		return nil, err
	}
	updated, err := s.categories.Update(ctx, &next)
	if err != nil {
		return nil, err
	}
	d := dto.NewCategoryDTO(*updated)
	return &d, nil
}

func (s *CategoryService) Delete(ctx context.Context, hexID string) error {
	id, err := parseID(hexID)
	if err != nil {
		return err
	}
	return s.categories.DeleteByID(ctx, id)
}
