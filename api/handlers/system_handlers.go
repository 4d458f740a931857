package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-server/dto"
)

const APIVersion = "1.0.0"

// Pinger reports whether the database answers. *db.Mongo implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Liveness plus a MongoDB ping
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Failure      503  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		now := time.Now().UTC().Format(time.RFC3339)
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponseDTO{
				Message:   "Database unavailable",
				Mongo:     "disconnected",
				Timestamp: now,
			})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponseDTO{
			Success:   true,
			Message:   "Server is running!",
			Mongo:     "connected",
			Timestamp: now,
		})
	}
}

var endpoints = map[string]map[string]string{
	"posts": {
		"GET /api/posts":                 "Get all posts",
		"GET /api/posts/:id":             "Get single post",
		"GET /api/posts/categories/list": "Get categories of published posts",
		"POST /api/posts":                "Create new post",
		"PUT /api/posts/:id":             "Update post",
		"DELETE /api/posts/:id":          "Delete post",
		"GET /api/posts/:id/activity":    "Get recorded lifecycle events of a post",
	},
	"categories": {
		"GET /api/categories":        "Get all categories",
		"GET /api/categories/:id":    "Get single category",
		"POST /api/categories":       "Create new category",
		"PUT /api/categories/:id":    "Update category",
		"DELETE /api/categories/:id": "Delete category",
	},
}

// APIInfoHandler godoc
// @Summary      API info
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.APIInfoResponseDTO
// @Router       / [get]
func APIInfoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIInfoResponseDTO{
			Success:   true,
			Message:   "Blog API",
			Version:   APIVersion,
			Endpoints: endpoints,
		})
	}
}
