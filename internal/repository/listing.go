package repository

import (
	"context"

	"backend/pkg/listquery"

	"gorm.io/gorm"
)

// ListDefinition is the declarative query configuration for one resource:
// what to select, the FROM clause with its display joins, the prefix that
// qualifies sort columns, and which columns free-text search runs over.
// One ListPage engine serves every resource; entities differ only by their
// definition.
type ListDefinition struct {
	Select        string
	From          string
	SortPrefix    string
	SearchColumns []string
}

// ListPage runs the two-phase list query: a COUNT over the filtered set, then
// one page of rows with the same WHERE clause and bound values plus sort and
// LIMIT/OFFSET (both bound, never interpolated). The sort column is safe to
// splice because it only ever comes out of the resource's allow-list.
func ListPage[T any](ctx context.Context, db *gorm.DB, def ListDefinition, q listquery.Params) ([]T, int64, error) {
	where, values := listquery.BuildWhere(q.Filters, q.Search, def.SearchColumns)

	conn := GetDB(ctx, db)

	var total int64
	countSQL := "SELECT COUNT(*) FROM " + def.From
	if where != "" {
		countSQL += " " + where
	}
	if err := conn.Raw(countSQL, values...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSQL := "SELECT " + def.Select + " FROM " + def.From
	if where != "" {
		pageSQL += " " + where
	}
	pageSQL += " ORDER BY " + def.SortPrefix + q.SortBy + " " + q.SortOrder + " LIMIT ? OFFSET ?"

	args := make([]interface{}, 0, len(values)+2)
	args = append(args, values...)
	args = append(args, q.Limit, q.Offset)

	var items []T
	if err := conn.Raw(pageSQL, args...).Scan(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
