package domain

// PaginationParams holds offset-based pagination parameters for list views.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the item offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginate returns the slice of items that falls on page p.
func Paginate[T any](items []T, p PaginationParams) []T {
	off := p.Offset()
	if off >= len(items) || p.PageSize <= 0 {
		return []T{}
	}
	end := min(off+p.PageSize, len(items))
	return items[off:end]
}
