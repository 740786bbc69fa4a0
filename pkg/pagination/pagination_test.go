package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/items"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=4&limit=25", 4, 25, 75},
		{"zero page", "?page=0", 1, 10, 0},
		{"negative page", "?page=-2", 1, 10, 0},
		{"zero limit", "?limit=0", 1, 10, 0},
		{"limit capped", "?limit=5000", 1, 100, 0},
		{"non-numeric", "?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseQuery(t, tt.query)
			if p.Page != tt.page || p.Limit != tt.limit || p.Offset != tt.offset {
				t.Errorf("got %+v, want page=%d limit=%d offset=%d", p, tt.page, tt.limit, tt.offset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int64
		limit      int
		want       int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{3, 1, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.totalItems, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.limit, got, tt.want)
		}
	}
}
