package response

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 10, 95, 10, true, false},
		{"middle page", 5, 10, 95, 10, true, true},
		{"last page", 10, 10, 95, 10, false, true},
		{"exact multiple", 2, 10, 20, 2, false, true},
		{"single page", 1, 10, 3, 1, false, false},
		{"no rows", 1, 10, 0, 0, false, false},
		{"page past the end", 7, 10, 30, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.totalItems)
			if p.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.totalPages)
			}
			if p.HasNextPage != tt.hasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.hasNext)
			}
			if p.HasPrevPage != tt.hasPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.hasPrev)
			}
			if p.CurrentPage != tt.page || p.ItemsPerPage != tt.limit || p.TotalItems != tt.totalItems {
				t.Errorf("echo fields = %+v", p)
			}
		})
	}
}

func TestEnvelopes(t *testing.T) {
	ok := Success("done", map[string]int{"id": 1})
	if !ok.Success || ok.Message != "done" || ok.Timestamp == "" {
		t.Errorf("Success envelope = %+v", ok)
	}

	fail := Error("nope")
	if fail.Success || fail.Message != "nope" || fail.Data != nil {
		t.Errorf("Error envelope = %+v", fail)
	}

	detailed := ErrorWithDetails("invalid", "name is required")
	if detailed.Errors != "name is required" {
		t.Errorf("Errors = %q", detailed.Errors)
	}

	paged := Paginated("list", []int{1, 2}, NewPagination(1, 10, 2))
	if paged.Pagination == nil || paged.Pagination.TotalItems != 2 {
		t.Errorf("Paginated envelope = %+v", paged)
	}
}
