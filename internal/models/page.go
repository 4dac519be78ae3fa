package models

// Page is the standard paginated list envelope returned by list endpoints.
type Page[T any] struct {
	PagesCount int   `json:"pagesCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

// NewPage wraps items in a Page envelope, deriving PagesCount from the
// total and page size.
func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		PagesCount: pages,
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		Items:      items,
	}
}
