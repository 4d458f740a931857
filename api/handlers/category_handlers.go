package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/dto"
	"blog-server/services"
)

// ListCategoriesHandler godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err, categoryResource)
			return
		}
		c.JSON(http.StatusOK, dto.CategoryListResponseDTO{Success: true, Data: items})
	}
}

// GetCategoryHandler godoc
// @Summary      Get category by id
// @Tags         categories
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.CategoryResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /categories/{id} [get]
func GetCategoryHandler(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, categoryResource)
			return
		}
		c.JSON(http.StatusOK, dto.CategoryResponseDTO{Success: true, Data: *cat})
	}
}

// CreateCategoryHandler godoc
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Param        body  body  dto.CategoryPayload  true  "Category"
// @Produce      json
// @Success      201  {object}  dto.CategoryResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /categories [post]
func CreateCategoryHandler(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.CategoryPayload
		if !bindJSON(c, &in) {
			return
		}
		cat, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, categoryResource)
			return
		}
		c.JSON(http.StatusCreated, dto.CategoryResponseDTO{Success: true, Message: "Category created successfully", Data: *cat})
	}
}

// UpdateCategoryHandler godoc
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Param        id    path  string               true  "ObjectID"
// @Param        body  body  dto.CategoryPayload  true  "Fields to change"
// @Produce      json
// @Success      200  {object}  dto.CategoryResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /categories/{id} [put]
func UpdateCategoryHandler(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.CategoryPayload
		if !bindJSON(c, &in) {
			return
		}
		cat, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, categoryResource)
			return
		}
		c.JSON(http.StatusOK, dto.CategoryResponseDTO{Success: true, Message: "Category updated successfully", Data: *cat})
	}
}

// DeleteCategoryHandler godoc
// @Summary      Delete category
// @Tags         categories
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /categories/{id} [delete]
func DeleteCategoryHandler(svc *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, categoryResource)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "Category deleted successfully"})
	}
}
