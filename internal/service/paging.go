package service

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePaging clamps client paging inputs and derives limit/offset.
func normalizePaging(page, pageSize int) (p, size, limit, offset int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}
