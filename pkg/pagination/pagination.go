package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 24
	// MaxPageSize caps how many items any page can request.
	MaxPageSize = 100
)

// Result is one page of a filtered list plus enough metadata for callers to
// drive infinite scroll or direct page navigation.
type Result[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NormalizePageSize enforces the configured default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Paginate slices items into the requested page. The page is clamped into
// [1, max(totalPages, 1)], so out-of-range requests return the nearest valid
// page rather than an error.
func Paginate[T any](items []T, page, pageSize int) Result[T] {
	pageSize = NormalizePageSize(pageSize)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
