package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/dto"
	"blog-server/eventbus"
	"blog-server/models"
	"blog-server/services"
	"blog-server/services/storetest"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	Data       json.RawMessage `json:"data"`
	Pagination dto.Pagination  `json:"pagination"`
}

func newTestEngine() *gin.Engine {
	r, _ := newTestEngineWithActivity()
	return r
}

func newTestEngineWithActivity() (*gin.Engine, *storetest.ActivityStore) {
	gin.SetMode(gin.TestMode)
	posts := storetest.NewPostStore()
	activityStore := storetest.NewActivityStore()
	activity := services.NewActivityService(activityStore)
	listing := services.NewListingService(posts, 100)
	mutations := services.NewPostMutationService(posts, &storetest.Bus{}, eventbus.NewTopic("blog.post.events"))
	categories := services.NewCategoryService(storetest.NewCategoryStore())

	r := gin.New()
	r.GET("/api", APIInfoHandler())
	r.GET("/api/health", HealthHandler(fakePinger{}))
	r.GET("/api/posts", ListPostsHandler(listing, 10))
	r.GET("/api/posts/categories/list", ListPostCategoriesHandler(listing))
	r.GET("/api/posts/:id", GetPostHandler(listing))
	r.GET("/api/posts/:id/activity", ListPostActivityHandler(activity))
	r.POST("/api/posts", CreatePostHandler(mutations))
	r.PUT("/api/posts/:id", UpdatePostHandler(mutations))
	r.DELETE("/api/posts/:id", DeletePostHandler(mutations))
	r.GET("/api/categories", ListCategoriesHandler(categories))
	r.GET("/api/categories/:id", GetCategoryHandler(categories))
	r.POST("/api/categories", CreateCategoryHandler(categories))
	r.PUT("/api/categories/:id", UpdateCategoryHandler(categories))
	r.DELETE("/api/categories/:id", DeleteCategoryHandler(categories))
	return r, activityStore
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func createPost(t *testing.T, r http.Handler, body string) dto.PostDTO {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/posts", body)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var p dto.PostDTO
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestCreatePost(t *testing.T) {
	r := newTestEngine()

	code, env := do(t, r, http.MethodPost, "/api/posts", `{"title":"Hi","content":"World","tags":"a, b, ,a"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Post created successfully", env.Message)

	var p dto.PostDTO
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Anonymous", p.Author)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, "draft", p.Status)
	assert.Equal(t, []string{"a", "b", "a"}, p.Tags)
}

func TestCreatePostValidation(t *testing.T) {
	r := newTestEngine()

	code, env := do(t, r, http.MethodPost, "/api/posts", `{"content":"World"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Post title is required", env.Message)

	code, env = do(t, r, http.MethodPost, "/api/posts", `{"title":"t","content":"c","status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"Status must be one of: draft, published"}, env.Errors)

	code, env = do(t, r, http.MethodPost, "/api/posts", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestListPosts(t *testing.T) {
	r := newTestEngine()
	for i := 0; i < 12; i++ {
		createPost(t, r, `{"title":"Go tips","content":"c","status":"published","category":"Tech"}`)
	}
	createPost(t, r, `{"title":"Draft","content":"c"}`)

	code, env := do(t, r, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, dto.Pagination{Current: 1, Pages: 2, Total: 12, Limit: 10}, env.Pagination)
	var items []dto.PostDTO
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 10)

	_, env = do(t, r, http.MethodGet, "/api/posts?page=2&limit=5&status=all", "")
	assert.Equal(t, dto.Pagination{Current: 2, Pages: 3, Total: 13, Limit: 5}, env.Pagination)

	_, env = do(t, r, http.MethodGet, "/api/posts?status=draft", "")
	assert.Equal(t, int64(1), env.Pagination.Total)

	_, env = do(t, r, http.MethodGet, "/api/posts?search=TIPS&category=Tech", "")
	assert.Equal(t, int64(12), env.Pagination.Total)

	_, env = do(t, r, http.MethodGet, "/api/posts?page=9", "")
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
}

func TestListPostsRejectsBadPaging(t *testing.T) {
	r := newTestEngine()

	for _, target := range []string{
		"/api/posts?page=0",
		"/api/posts?page=abc",
		"/api/posts?limit=-3",
		"/api/posts?limit=1000",
	} {
		code, env := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, code, target)
		assert.False(t, env.Success, target)
		assert.NotEmpty(t, env.Message, target)
	}
}

func TestGetPostCountsViews(t *testing.T) {
	r := newTestEngine()
	p := createPost(t, r, `{"title":"t","content":"c"}`)

	do(t, r, http.MethodGet, "/api/posts/"+p.ID, "")
	code, env := do(t, r, http.MethodGet, "/api/posts/"+p.ID, "")
	require.Equal(t, http.StatusOK, code)
	var got dto.PostDTO
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(2), got.ViewCount)

	code, env = do(t, r, http.MethodGet, "/api/posts/nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid post ID", env.Message)

	code, env = do(t, r, http.MethodGet, "/api/posts/0123456789abcdef01234567", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", env.Message)
}

func TestUpdateAndDeletePost(t *testing.T) {
	r := newTestEngine()
	p := createPost(t, r, `{"title":"Old","content":"c","author":"Ann"}`)

	code, env := do(t, r, http.MethodPut, "/api/posts/"+p.ID, `{"title":"New","author":""}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post updated successfully", env.Message)
	var got dto.PostDTO
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Ann", got.Author)

	code, env = do(t, r, http.MethodDelete, "/api/posts/"+p.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post deleted successfully", env.Message)

	code, _ = do(t, r, http.MethodGet, "/api/posts/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, r, http.MethodDelete, "/api/posts/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListPostCategories(t *testing.T) {
	r := newTestEngine()
	createPost(t, r, `{"title":"t","content":"c","category":"Tech","status":"published"}`)
	createPost(t, r, `{"title":"t","content":"c","category":"Art","status":"published"}`)
	createPost(t, r, `{"title":"t","content":"c","category":"Hidden"}`)

	code, env := do(t, r, http.MethodGet, "/api/posts/categories/list", "")
	require.Equal(t, http.StatusOK, code)
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Equal(t, []string{"Art", "Tech"}, names)

	// an empty store still answers with an array
	_, env = do(t, newTestEngine(), http.MethodGet, "/api/posts/categories/list", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCategoryEndpoints(t *testing.T) {
	r := newTestEngine()

	code, env := do(t, r, http.MethodPost, "/api/categories", `{"name":"Tech","description":"Code"}`)
	require.Equal(t, http.StatusCreated, code)
	var cat dto.CategoryDTO
	require.NoError(t, json.Unmarshal(env.Data, &cat))

	code, env = do(t, r, http.MethodPost, "/api/categories", `{"name":"Tech"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Category name already exists", env.Message)

	code, env = do(t, r, http.MethodPost, "/api/categories", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Category name is required", env.Message)

	code, env = do(t, r, http.MethodPut, "/api/categories/"+cat.ID, `{"description":"Programming"}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	assert.Equal(t, "Programming", cat.Description)

	code, env = do(t, r, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, code)
	var all []dto.CategoryDTO
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)

	code, _ = do(t, r, http.MethodDelete, "/api/categories/"+cat.ID, "")
	assert.Equal(t, http.StatusOK, code)
	code, env = do(t, r, http.MethodGet, "/api/categories/"+cat.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Category not found", env.Message)

	code, env = do(t, r, http.MethodGet, "/api/categories/bad", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid category ID", env.Message)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/up", HealthHandler(fakePinger{}))
	r.GET("/down", HealthHandler(fakePinger{err: errors.New("no primary")}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/up", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongo":"connected"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAPIInfo(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info dto.APIInfoResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, APIVersion, info.Version)
	assert.Contains(t, info.Endpoints["posts"], "GET /api/posts")
}

func TestRespondErrorUnexpected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) { respondError(c, errors.New("socket closed"), postResource) })

	code, env := do(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Server error", env.Message)
}

func TestListPostActivity(t *testing.T) {
	r, store := newTestEngineWithActivity()
	postID := primitive.NewObjectID().Hex()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, typ := range []string{"post.created", "post.updated"} {
		_, err := store.Record(context.Background(), &models.PostActivity{
			EventID: typ, Type: typ, PostID: postID, Title: "Hello", OccurredAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	code, env := do(t, r, http.MethodGet, "/api/posts/"+postID+"/activity", "")
	require.Equal(t, http.StatusOK, code)
	var items []dto.PostActivityDTO
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "post.updated", items[0].Type)
	assert.Equal(t, "Hello", items[1].Title)

	code, env = do(t, r, http.MethodGet, "/api/posts/"+postID+"/activity?limit=1", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)

	code, env = do(t, r, http.MethodGet, "/api/posts/bogus/activity", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid post ID", env.Message)

	store.Err = errors.New("boom")
	code, env = do(t, r, http.MethodGet, "/api/posts/"+postID+"/activity", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error", env.Message)
}
