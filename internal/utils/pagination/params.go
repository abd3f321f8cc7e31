package pagination

// The finance screens page through results by number with a total count, so
// this package normalizes page/pageSize/sort query input into SQL-ready
// limit/offset values with a sort-column whitelist.

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is normalized pagination and sorting input.
type Params struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string // "asc" or "desc"
}

// Normalize clamps page/pageSize into range and resolves the sort column
// against the allowed set, falling back to defaultSort. Direction defaults
// to descending, matching the newest-first finance listings.
func Normalize(page, pageSize int, sortBy, sortDirection, defaultSort string, allowedSorts map[string]string) Params {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	column, ok := allowedSorts[sortBy]
	if !ok {
		column = defaultSort
	}

	if sortDirection != "asc" && sortDirection != "desc" {
		sortDirection = "desc"
	}

	return Params{
		Page:          page,
		PageSize:      pageSize,
		SortBy:        column,
		SortDirection: sortDirection,
	}
}

// Offset returns the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns how many pages a result set of totalCount spans.
func (p Params) TotalPages(totalCount int64) int {
	if totalCount <= 0 {
		return 0
	}
	pages := int(totalCount) / p.PageSize
	if int(totalCount)%p.PageSize != 0 {
		pages++
	}
	return pages
}
