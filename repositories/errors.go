package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches the identifier.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned on unique index violations.
	ErrDuplicateKey = errors.New("duplicate key")
)

// translate maps driver errors onto the repository sentinels and leaves
// everything else untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	default:
		return err
	}
}
