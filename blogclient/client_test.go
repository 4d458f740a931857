package blogclient

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-server/api/router"
	"blog-server/dto"
	"blog-server/eventbus"
	"blog-server/services"
	"blog-server/services/storetest"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, db pinger) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := storetest.NewPostStore()
	engine := router.New(router.Deps{
		Listing:      services.NewListingService(posts, 100),
		Mutations:    services.NewPostMutationService(posts, nil, eventbus.NewTopic("blog.post.events")),
		Categories:   services.NewCategoryService(storetest.NewCategoryStore()),
		DB:           db,
		DefaultLimit: 10,
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestClientPostRoundTrip(t *testing.T) {
	c := newTestServer(t, pinger{})
	ctx := context.Background()

	created, err := c.CreatePost(ctx, dto.PostPayload{
		Title:    "Hello",
		Content:  "World",
		Category: "Tech",
		Tags:     dto.Tags("go", "web"),
		Status:   "published",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"go", "web"}, created.Tags)

	_, err = c.CreatePost(ctx, dto.PostPayload{Title: "Draft", Content: "x"})
	require.NoError(t, err)

	page, err := c.ListPosts(ctx, ListParams{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, dto.Pagination{Current: 1, Pages: 1, Total: 1, Limit: 5}, page.Pagination)

	all := "all"
	page, err = c.ListPosts(ctx, ListParams{Status: &all, Search: "draft"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)

	got, err := c.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	updated, err := c.UpdatePost(ctx, created.ID, dto.PostPayload{Title: "Hello again"})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "World", updated.Content)

	cats, err := c.ListPostCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech"}, cats)

	require.NoError(t, c.DeletePost(ctx, created.ID))
	_, err = c.GetPost(ctx, created.ID)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Post not found")
}

func TestClientValidationError(t *testing.T) {
	c := newTestServer(t, pinger{})

	_, err := c.CreatePost(context.Background(), dto.PostPayload{Content: "no title"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Post title is required", apiErr.Error())

	_, err = c.ListPosts(context.Background(), ListParams{Limit: 500})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "limit cannot exceed 100", apiErr.Message)
}

func TestClientCategories(t *testing.T) {
	c := newTestServer(t, pinger{})
	ctx := context.Background()

	_, err := c.CreateCategory(ctx, dto.CategoryPayload{Name: "Tech"})
	require.NoError(t, err)
	_, err = c.CreateCategory(ctx, dto.CategoryPayload{Name: "Tech"})
	assert.EqualError(t, err, "Category name already exists")

	cats, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Tech", cats[0].Name)
}

func TestClientHealth(t *testing.T) {
	assert.NoError(t, newTestServer(t, pinger{}).Health(context.Background()))

	err := newTestServer(t, pinger{err: errors.New("down")}).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).ListPosts(context.Background(), ListParams{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestRenderListing(t *testing.T) {
	page := PostPage{
		Items: []dto.PostDTO{{
			ID:        "abc",
			Title:     "Hello",
			Author:    "Ann",
			Category:  "Tech",
			Status:    "published",
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			ViewCount: 3,
			Tags:      []string{"go", "web"},
			Excerpt:   "Short  text\nhere",
		}},
		Pagination: dto.Pagination{Current: 1, Pages: 1, Total: 1, Limit: 10},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderListing(&buf, page))
	want := "[abc] Hello\n" +
		"    Ann | Tech | published | 2024-03-01 | 3 views\n" +
		"    tags: go, web\n" +
		"    Short text here\n" +
		"\n" +
		"Page 1 of 1 (1 posts, 10 per page)\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderListing(&buf, PostPage{Pagination: dto.Pagination{Current: 1, Limit: 10}}))
	assert.Equal(t, "No posts found.\nPage 1 of 0 (0 posts, 10 per page)\n", buf.String())
}
