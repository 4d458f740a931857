package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps "<Struct>.<Field>.<tag>" to the message shown to users.
var fieldMessages = map[string]string{
	"Post.Title.required":      "Post title is required",
	"Post.Title.max":           "Title cannot exceed 200 characters",
	"Post.Content.required":    "Post content is required",
	"Post.Excerpt.max":         "Excerpt cannot exceed 300 characters",
	"Post.Author.required":     "Author is required",
	"Post.Category.required":   "Category is required",
	"Post.Status.oneof":        "Status must be one of: draft, published",
	"Post.ViewCount.min":       "View count cannot be negative",
	"Category.Name.required":   "Category name is required",
	"Category.Name.max":        "Category name cannot exceed 50 characters",
	"Category.Description.max": "Description cannot exceed 200 characters",
}

// validateStruct runs the model constraints and converts failures into a
// ValidationError carrying one message per field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := fe.StructNamespace() + "." + fe.Tag()
		if msg, ok := fieldMessages[key]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return newValidationError("Validation error", msgs...)
}
