package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fajarprasetia/smartone-finance/internal/utils/pagination"
)

func TestNormalize(t *testing.T) {
	allowed := map[string]string{
		"date":   "entry_date",
		"status": "status",
	}

	tests := []struct {
		name          string
		page          int
		pageSize      int
		sortBy        string
		sortDirection string
		want          pagination.Params
	}{
		{
			name: "defaults for zero values",
			want: pagination.Params{Page: 1, PageSize: pagination.DefaultPageSize, SortBy: "entry_date", SortDirection: "desc"},
		},
		{
			name: "negative page clamps to one",
			page: -3, pageSize: 10,
			want: pagination.Params{Page: 1, PageSize: 10, SortBy: "entry_date", SortDirection: "desc"},
		},
		{
			name: "oversized page size clamps to max",
			page: 2, pageSize: 5000,
			want: pagination.Params{Page: 2, PageSize: pagination.MaxPageSize, SortBy: "entry_date", SortDirection: "desc"},
		},
		{
			name: "known sort key resolves to column",
			page: 1, pageSize: 20, sortBy: "status", sortDirection: "asc",
			want: pagination.Params{Page: 1, PageSize: 20, SortBy: "status", SortDirection: "asc"},
		},
		{
			name: "unknown sort key falls back to default",
			page: 1, pageSize: 20, sortBy: "password", sortDirection: "asc",
			want: pagination.Params{Page: 1, PageSize: 20, SortBy: "entry_date", SortDirection: "asc"},
		},
		{
			name: "bad direction falls back to desc",
			page: 1, pageSize: 20, sortBy: "date", sortDirection: "sideways",
			want: pagination.Params{Page: 1, PageSize: 20, SortBy: "entry_date", SortDirection: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.Normalize(tt.page, tt.pageSize, tt.sortBy, tt.sortDirection, "entry_date", allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, PageSize: 20}.Offset())
}

func TestTotalPages(t *testing.T) {
	p := pagination.Params{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
	assert.Equal(t, 5, p.TotalPages(100))
}
