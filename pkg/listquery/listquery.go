// Package listquery turns raw list-request query parameters into the safe
// building blocks of a paginated SQL query: a parameterized WHERE clause with
// its bound values, plus a sort column/direction validated against a
// per-resource allow-list. Untrusted values are never interpolated into SQL;
// they only ever travel through placeholders.
package listquery

import (
	"strings"

	"backend/pkg/pagination"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultSortField is used whenever the requested sort column is not in
	// the resource's allow-list.
	DefaultSortField = "id"

	Ascending  = "ASC"
	Descending = "DESC"
)

// Filter is one exact-match condition, bound to a fully qualified column.
type Filter struct {
	Column string
	Value  string
}

// FilterKey maps an allowed query parameter to the column it filters on.
type FilterKey struct {
	Param  string
	Column string
}

// Options declares the filter/sort surface a resource exposes.
type Options struct {
	SortFields []string
	Filters    []FilterKey
}

// Params carries everything a list query needs, already validated.
type Params struct {
	Page      int
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
	Filters   []Filter
	Search    string
}

// Parse reads pagination, sort, filter and search parameters from the request.
// Unknown sort fields fall back to "id"; filters not in the allow-list are
// ignored. Filters keep allow-list order so bound values stay deterministic.
func Parse(c *gin.Context, opts Options) Params {
	pg := pagination.Parse(c)

	p := Params{
		Page:      pg.Page,
		Limit:     pg.Limit,
		Offset:    pg.Offset,
		SortBy:    ResolveSort(c.Query("sortBy"), opts.SortFields),
		SortOrder: ResolveOrder(c.Query("sortOrder")),
		Search:    c.Query("search"),
	}

	for _, f := range opts.Filters {
		if v := c.Query(f.Param); v != "" {
			p.Filters = append(p.Filters, Filter{Column: f.Column, Value: v})
		}
	}

	return p
}

// ResolveSort returns requested if it is in the allow-list, else "id".
func ResolveSort(requested string, allowed []string) string {
	for _, f := range allowed {
		if f == requested {
			return requested
		}
	}
	return DefaultSortField
}

// ResolveOrder normalizes a requested direction. Only a case-insensitive
// "desc" yields DESC; anything else, including empty, is ASC.
func ResolveOrder(requested string) string {
	if strings.EqualFold(requested, "desc") {
		return Descending
	}
	return Ascending
}

// BuildWhere assembles a WHERE clause from exact-match filters plus an
// optional free-text search over searchColumns. The returned values line up
// with the placeholders in order: one per filter, then one wildcarded copy of
// the search term per search column. With no filters and no search the clause
// is empty and the query matches all rows.
func BuildWhere(filters []Filter, search string, searchColumns []string) (string, []interface{}) {
	var conditions []string
	var values []interface{}

	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		conditions = append(conditions, f.Column+" = ?")
		values = append(values, f.Value)
	}

	if search != "" && len(searchColumns) > 0 {
		likes := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			likes = append(likes, col+" LIKE ?")
			values = append(values, "%"+search+"%")
		}
		conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), values
}
