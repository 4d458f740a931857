package dto

// Pagination summarizes a paged listing.
// Current is 1-based; Pages is ceil(Total/Limit) and 0 when Total is 0.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

// NewPagination computes the summary for page of size limit over total matches.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Current: page, Pages: pages, Total: total, Limit: limit}
}
