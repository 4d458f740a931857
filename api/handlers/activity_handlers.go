package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/dto"
	"blog-server/services"
)

// ListPostActivityHandler godoc
// @Summary      Post activity
// @Description  Lifecycle events recorded for a post by the activity consumer, newest first
// @Tags         posts
// @Param        id     path   string  true   "ObjectID"
// @Param        limit  query  int     false  "Max entries (<=100)"  default(20)
// @Produce      json
// @Success      200  {object}  dto.PostActivityListResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/activity [get]
func ListPostActivityHandler(svc *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListForPost(c.Request.Context(), c.Param("id"), queryInt(c, "limit", services.DefaultActivityLimit))
		if err != nil {
			respondError(c, err, postResource)
			return
		}
		c.JSON(http.StatusOK, dto.PostActivityListResponseDTO{Success: true, Data: dto.NewPostActivityDTOs(items)})
	}
}
