package listquery

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveSort(t *testing.T) {
	allowed := []string{"id", "name", "created_at"}

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{"allowed field", "name", "name"},
		{"unknown field falls back", "password", "id"},
		{"empty falls back", "", "id"},
		{"sql injection falls back", "name; DROP TABLE users", "id"},
		{"case sensitive", "Name", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSort(tt.requested, allowed); got != tt.want {
				t.Errorf("ResolveSort(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		requested string
		want      string
	}{
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"Desc", "DESC"},
		{"asc", "ASC"},
		{"", "ASC"},
		{"descending", "ASC"},
		{"random", "ASC"},
	}

	for _, tt := range tests {
		if got := ResolveOrder(tt.requested); got != tt.want {
			t.Errorf("ResolveOrder(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
}

func TestBuildWhereEmpty(t *testing.T) {
	clause, values := BuildWhere(nil, "", nil)
	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}
	if values != nil {
		t.Errorf("expected nil values, got %v", values)
	}
}

func TestBuildWhereFiltersOnly(t *testing.T) {
	filters := []Filter{
		{Column: "t.status", Value: "In Progress"},
		{Column: "t.project_id", Value: "7"},
	}
	clause, values := BuildWhere(filters, "", nil)

	want := "WHERE t.status = ? AND t.project_id = ?"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(values) != 2 || values[0] != "In Progress" || values[1] != "7" {
		t.Errorf("values = %v", values)
	}
}

func TestBuildWhereSearchOnly(t *testing.T) {
	clause, values := BuildWhere(nil, "bridge", []string{"p.name", "p.client"})

	want := "WHERE (p.name LIKE ? OR p.client LIKE ?)"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	for i, v := range values {
		if v != "%bridge%" {
			t.Errorf("values[%d] = %v, want %%bridge%%", i, v)
		}
	}
}

func TestBuildWhereFiltersAndSearch(t *testing.T) {
	filters := []Filter{{Column: "i.status", Value: "Pending"}}
	clause, values := BuildWhere(filters, "acme", []string{"i.invoice_number", "p.name", "i.client"})

	if !strings.HasPrefix(clause, "WHERE i.status = ? AND (") {
		t.Errorf("clause = %q", clause)
	}

	// Placeholder count must equal bound value count.
	placeholders := strings.Count(clause, "?")
	if placeholders != len(values) {
		t.Errorf("placeholders = %d, values = %d", placeholders, len(values))
	}
	if len(values) != 4 {
		t.Errorf("expected 4 values (1 filter + 3 search), got %d", len(values))
	}
	if values[0] != "Pending" {
		t.Errorf("filter value must come first, got %v", values[0])
	}
}

func TestBuildWhereSkipsEmptyFilterValues(t *testing.T) {
	filters := []Filter{
		{Column: "a", Value: ""},
		{Column: "b", Value: "x"},
	}
	clause, values := BuildWhere(filters, "", nil)
	if clause != "WHERE b = ?" {
		t.Errorf("clause = %q", clause)
	}
	if len(values) != 1 {
		t.Errorf("values = %v", values)
	}
}

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	opts := Options{
		SortFields: []string{"id", "title", "due_date"},
		Filters: []FilterKey{
			{Param: "status", Column: "t.status"},
			{Param: "project_id", Column: "t.project_id"},
		},
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET",
		"/tasks?page=3&limit=20&sortBy=due_date&sortOrder=DESC&status=Open&priority=High&search=steel", nil)

	p := Parse(c, opts)

	if p.Page != 3 || p.Limit != 20 || p.Offset != 40 {
		t.Errorf("pagination = %+v", p)
	}
	if p.SortBy != "due_date" || p.SortOrder != "DESC" {
		t.Errorf("sort = %s %s", p.SortBy, p.SortOrder)
	}
	if p.Search != "steel" {
		t.Errorf("search = %q", p.Search)
	}
	// priority is not in the allow-list and must be dropped.
	if len(p.Filters) != 1 || p.Filters[0].Column != "t.status" || p.Filters[0].Value != "Open" {
		t.Errorf("filters = %+v", p.Filters)
	}
}

func TestParseDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/tasks?sortBy=evil&sortOrder=up", nil)

	p := Parse(c, Options{SortFields: []string{"id", "title"}})

	if p.Page != 1 || p.Limit != 10 || p.Offset != 0 {
		t.Errorf("pagination defaults = %+v", p)
	}
	if p.SortBy != "id" {
		t.Errorf("sortBy = %q, want id", p.SortBy)
	}
	if p.SortOrder != "ASC" {
		t.Errorf("sortOrder = %q, want ASC", p.SortOrder)
	}
	if len(p.Filters) != 0 {
		t.Errorf("filters = %+v", p.Filters)
	}
}
