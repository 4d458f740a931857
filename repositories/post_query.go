package repositories

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/models"
)

const (
	// FilterAll disables the category or status predicate.
	FilterAll = "all"

	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// sortableFields lists the keys a listing may be sorted by.
var sortableFields = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"title":     {},
	"viewCount": {},
	"author":    {},
	"category":  {},
	"status":    {},
}

// PostFilter describes one page of a post listing.
//
// Status nil means the listing default (published). A non-nil empty string
// or "all" matches every status.
type PostFilter struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	Status    *string
	SortBy    string
	SortOrder string
}

// Skip is the number of documents preceding the requested page.
func (f PostFilter) Skip() int64 {
	if f.Page <= 1 {
		return 0
	}
	return int64(f.Page-1) * int64(f.Limit)
}

// Take is the page size.
func (f PostFilter) Take() int64 {
	return int64(f.Limit)
}

// BuildPostQuery converts a filter into a posts predicate and sort document.
// It never fails: unknown sort keys fall back to createdAt.
func BuildPostQuery(f PostFilter) (bson.M, bson.D) {
	filter := bson.M{}

	status := models.PostStatusPublished
	if f.Status != nil {
		status = *f.Status
	}
	if status != "" && status != FilterAll {
		filter["status"] = status
	}

	if f.Category != "" && f.Category != FilterAll {
		filter["category"] = f.Category
	}

	if f.Search != "" {
		// substring match, the search text is never interpreted as a pattern
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": rx},
			{"content": rx},
			{"tags": bson.M{"$in": bson.A{rx}}},
		}
	}

	return filter, buildSort(f.SortBy, f.SortOrder)
}

func buildSort(sortBy, sortOrder string) bson.D {
	if _, ok := sortableFields[sortBy]; !ok {
		sortBy = DefaultSortBy
	}
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}
	dir := 1
	if sortOrder == "desc" {
		dir = -1
	}
	// _id keeps pages stable when the sort key ties
	return bson.D{
		{Key: sortBy, Value: dir},
		{Key: "_id", Value: dir},
	}
}
