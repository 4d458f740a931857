package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/dto"
	"blog-server/logger"
	"blog-server/services"
)

// resource names the messages used when an identifier cannot be resolved.
type resource struct {
	invalidID string
	notFound  string
}

var (
	postResource     = resource{invalidID: "Invalid post ID", notFound: "Post not found"}
	categoryResource = resource{invalidID: "Invalid category ID", notFound: "Category not found"}
)

const duplicateCategoryMessage = "Category name already exists"

// respondError is the single place where service errors become HTTP responses.
func respondError(c *gin.Context, err error, res resource) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: verr.Message, Errors: verr.Errors})
	case errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: res.invalidID})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Message: res.notFound})
	case errors.Is(err, services.ErrDuplicateKey):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: duplicateCategoryMessage})
	default:
		_ = c.Error(err)
		logger.ErrorWithFields("request failed", logger.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Message: "Server error", Error: err.Error()})
	}
}

// bindJSON decodes the request body, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: "Invalid request body", Errors: []string{err.Error()}})
		return false
	}
	return true
}
