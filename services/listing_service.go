package services

import (
	"context"
	"fmt"

	"blog-server/dto"
	"blog-server/models"
	"blog-server/repositories"
)

// ListingService serves read paths: paged listings, single fetches and the
// public category list.
type ListingService struct {
	posts    PostStore
	maxLimit int
}

func NewListingService(posts PostStore, maxLimit int) *ListingService {
	return &ListingService{posts: posts, maxLimit: maxLimit}
}

// ListPostsInput is a listing request after query string parsing.
type ListPostsInput struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	Status    *string
	SortBy    string
	SortOrder string
}

// List returns one page of posts with its pagination summary.
func (s *ListingService) List(ctx context.Context, in ListPostsInput) ([]dto.PostDTO, dto.Pagination, error) {
	if in.Page < 1 {
		return nil, dto.Pagination{}, newValidationError("page must be a positive integer")
	}
	if in.Limit < 1 {
		return nil, dto.Pagination{}, newValidationError("limit must be a positive integer")
	}
	if s.maxLimit > 0 && in.Limit > s.maxLimit {
		return nil, dto.Pagination{}, newValidationError(fmt.Sprintf("limit cannot exceed %d", s.maxLimit))
	}

	items, total, err := s.posts.List(ctx, repositories.PostFilter{
		Page:      in.Page,
		Limit:     in.Limit,
		Category:  in.Category,
		Search:    in.Search,
		Status:    in.Status,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	if len(items) > in.Limit {
		items = items[:in.Limit]
	}
	return dto.NewPostDTOs(items), dto.NewPagination(in.Page, in.Limit, total), nil
}

// Get returns a post and counts the view. Every successful call adds exactly
// one to viewCount.
func (s *ListingService) Get(ctx context.Context, hexID string) (*dto.PostDTO, error) {
	id, err := parseID(hexID)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewPostDTO(*p)
	return &d, nil
}

// ListCategories returns the sorted distinct categories of published posts.
// Categories used only by drafts are left out.
func (s *ListingService) ListCategories(ctx context.Context) ([]string, error) {
	return s.posts.DistinctCategories(ctx, models.PostStatusPublished)
}
