package services

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/repositories"
)

var (
	// ErrNotFound means the identifier does not resolve to a document.
	ErrNotFound = repositories.ErrNotFound
	// ErrDuplicateKey means a unique constraint (category name) was violated.
	ErrDuplicateKey = repositories.ErrDuplicateKey
	// ErrInvalidID means the identifier is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid identifier")
)

// ValidationError reports a rejected payload or query. Errors lists
// field level messages when there is more than one thing wrong.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}

func newValidationError(message string, errs ...string) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

func parseID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
