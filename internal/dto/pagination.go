package dto

// Default pagination values applied when the query omits them
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// PaginationQuery represents the page/limit query parameters.
// Pagination is 1-indexed; skip = (page-1)*limit.
type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults for missing values
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
}

// Offset returns the number of records to skip
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// PageMeta carries the pagination fields shared by every listing response
type PageMeta struct {
	TotalCount      int64 `json:"totalCount"`
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPageMeta computes pagination metadata. totalPages = ceil(total/limit);
// hasNextPage = page < totalPages; hasPreviousPage = page > 1.
func NewPageMeta(totalCount int64, page, limit int) PageMeta {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return PageMeta{
		TotalCount:      totalCount,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
