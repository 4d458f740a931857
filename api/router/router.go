package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-server/api/handlers"
	"blog-server/api/middleware"
	_ "blog-server/docs"
	"blog-server/dto"
	"blog-server/services"
)

// Deps are the services the routes are bound to.
type Deps struct {
	Listing      *services.ListingService
	Mutations    *services.PostMutationService
	Categories   *services.CategoryService
	Activity     *services.ActivityService
	DB           handlers.Pinger
	DefaultLimit int
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestTrace())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Message: "Server error"})
	}))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("", handlers.APIInfoHandler())
		api.GET("/health", handlers.HealthHandler(d.DB))

		posts := api.Group("/posts")
		posts.GET("", handlers.ListPostsHandler(d.Listing, d.DefaultLimit))
		posts.GET("/categories/list", handlers.ListPostCategoriesHandler(d.Listing))
		posts.GET("/:id", handlers.GetPostHandler(d.Listing))
		if d.Activity != nil {
			posts.GET("/:id/activity", handlers.ListPostActivityHandler(d.Activity))
		}
		posts.POST("", handlers.CreatePostHandler(d.Mutations))
		posts.PUT("/:id", handlers.UpdatePostHandler(d.Mutations))
		posts.DELETE("/:id", handlers.DeletePostHandler(d.Mutations))

		categories := api.Group("/categories")
		categories.GET("", handlers.ListCategoriesHandler(d.Categories))
		categories.GET("/:id", handlers.GetCategoryHandler(d.Categories))
		categories.POST("", handlers.CreateCategoryHandler(d.Categories))
		categories.PUT("/:id", handlers.UpdateCategoryHandler(d.Categories))
		categories.DELETE("/:id", handlers.DeleteCategoryHandler(d.Categories))
	}

	return r
}
