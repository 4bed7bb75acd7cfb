// Package pagination implements 1-based offset pagination for list endpoints.
package pagination

// Pagination carries the requested page window.
type Pagination struct {
	Page     int `form:"page,default=1" validate:"gte=1"`
	PageSize int `form:"page_size,default=10" validate:"gte=1,lte=100"` // Min 1, Max 100
}

// PageInfo describes the returned page relative to the full result set.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps the window to sane bounds. A page past the end of the
// result set is allowed; it simply yields an empty page.
func (p Pagination) Normalize(defaultSize, maxSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

// Offset returns the row offset for the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// BuildPageInfo derives PageInfo from the window and total row count.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	info := PageInfo{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
	}
	if p.PageSize > 0 {
		info.TotalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return info
}
