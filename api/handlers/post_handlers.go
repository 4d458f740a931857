package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-server/dto"
	"blog-server/services"
)

// queryInt reads a numeric query parameter. Absent means def; anything that
// is not an integer becomes 0 so the service rejects it as out of range.
func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  Filter, search, sort and paginate posts. Only published posts are listed unless status is given.
// @Tags         posts
// @Param        page       query  int     false  "Page number (1-based)"  default(1)
// @Param        limit      query  int     false  "Page size (<=100)"      default(10)
// @Param        category   query  string  false  "Exact category, or all"
// @Param        search     query  string  false  "Case-insensitive substring of title, content or tags"
// @Param        status     query  string  false  "draft, published, or all"
// @Param        sortBy     query  string  false  "createdAt, updatedAt, title, viewCount, author, category, status"
// @Param        sortOrder  query  string  false  "asc or desc"  default(desc)
// @Produce      json
// @Success      200  {object}  dto.PostListResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.ListingService, defaultLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.ListPostsInput{
			Page:      queryInt(c, "page", 1),
			Limit:     queryInt(c, "limit", defaultLimit),
			Category:  c.Query("category"),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
		}
		if status, ok := c.GetQuery("status"); ok {
			in.Status = &status
		}

		items, page, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusOK, dto.PostListResponseDTO{Success: true, Data: items, Pagination: page})
	}
}

// GetPostHandler godoc
// @Summary      Get post by id
// @Description  Returns a single post and increments its view count
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.PostResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [get]
func GetPostHandler(svc *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusOK, dto.PostResponseDTO{Success: true, Data: *post})
	}
}

// ListPostCategoriesHandler godoc
// @Summary      Categories in use
// @Description  Distinct categories of published posts, sorted
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.StringListResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/categories/list [get]
func ListPostCategoriesHandler(svc *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, dto.StringListResponseDTO{Success: true, Data: names})
	}
}

// CreatePostHandler godoc
// @Summary      Create post
// @Description  Tags may be a comma separated string or an array. Author, category and status default to Anonymous, General and draft.
// @Tags         posts
// @Accept       json
// @Param        body  body  dto.PostPayload  true  "Post"
// @Produce      json
// @Success      201  {object}  dto.PostResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostMutationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.PostPayload
		if !bindJSON(c, &in) {
			return
		}
		post, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusCreated, dto.PostResponseDTO{Success: true, Message: "Post created successfully", Data: *post})
	}
}

// UpdatePostHandler godoc
// @Summary      Update post
// @Description  Partial update. Absent or blank fields keep their stored value.
// @Tags         posts
// @Accept       json
// @Param        id    path  string           true  "ObjectID"
// @Param        body  body  dto.PostPayload  true  "Fields to change"
// @Produce      json
// @Success      200  {object}  dto.PostResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [put]
func UpdatePostHandler(svc *services.PostMutationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.PostPayload
		if !bindJSON(c, &in) {
			return
		}
		post, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusOK, dto.PostResponseDTO{Success: true, Message: "Post updated successfully", Data: *post})
	}
}

// DeletePostHandler godoc
// @Summary      Delete post
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [delete]
func DeletePostHandler(svc *services.PostMutationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "Post deleted successfully"})
	}
}
