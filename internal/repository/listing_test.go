package repository

import (
	"context"
	"fmt"
	"testing"

	"backend/internal/model"
	"backend/pkg/listquery"

	"gorm.io/gorm"
)

func seedProjects(t *testing.T, db *gorm.DB) {
	t.Helper()

	manager := model.User{FirstName: "Sara", LastName: "Odeh", Email: "sara@example.com", Password: "x", Role: model.RoleManager, Status: model.UserActive}
	if err := db.Create(&manager).Error; err != nil {
		t.Fatalf("seed manager: %v", err)
	}

	for i := 1; i <= 25; i++ {
		status := model.ProjectInProgress
		if i%5 == 0 {
			status = model.ProjectCompleted
		}
		p := model.Project{
			Name:      fmt.Sprintf("Project %02d", i),
			Client:    "Acme Builders",
			Status:    status,
			Priority:  model.PriorityMedium,
			ManagerID: &manager.ID,
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
	}
}

func TestListPagePagination(t *testing.T) {
	db := openTestDB(t)
	seedProjects(t, db)
	ctx := context.Background()

	q := listquery.Params{Page: 2, Limit: 10, Offset: 10, SortBy: "id", SortOrder: "ASC"}
	rows, total, err := ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}

	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(rows) != 10 {
		t.Fatalf("page size = %d, want 10", len(rows))
	}
	if rows[0].ID != 11 || rows[9].ID != 20 {
		t.Errorf("page 2 rows span %d..%d, want 11..20", rows[0].ID, rows[9].ID)
	}
}

func TestListPageJoinedFields(t *testing.T) {
	db := openTestDB(t)
	seedProjects(t, db)
	ctx := context.Background()

	q := listquery.Params{Page: 1, Limit: 1, SortBy: "id", SortOrder: "ASC"}
	rows, _, err := ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].ManagerName != "Sara Odeh" {
		t.Errorf("ManagerName = %q, want Sara Odeh", rows[0].ManagerName)
	}
	if rows[0].ManagerEmail != "sara@example.com" {
		t.Errorf("ManagerEmail = %q", rows[0].ManagerEmail)
	}
}

func TestListPageFilterAndSearch(t *testing.T) {
	db := openTestDB(t)
	seedProjects(t, db)
	ctx := context.Background()

	q := listquery.Params{
		Page: 1, Limit: 100, SortBy: "id", SortOrder: "ASC",
		Filters: []listquery.Filter{{Column: "p.status", Value: model.ProjectCompleted}},
	}
	rows, total, err := ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 5 || len(rows) != 5 {
		t.Errorf("completed projects: total=%d rows=%d, want 5", total, len(rows))
	}
	for _, r := range rows {
		if r.Status != model.ProjectCompleted {
			t.Errorf("row %d has status %q", r.ID, r.Status)
		}
	}

	q = listquery.Params{Page: 1, Limit: 100, SortBy: "id", SortOrder: "ASC", Search: "Project 07"}
	_, total, err = ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage search: %v", err)
	}
	if total != 1 {
		t.Errorf("search total = %d, want 1", total)
	}
}

func TestListPageSortDescending(t *testing.T) {
	db := openTestDB(t)
	seedProjects(t, db)
	ctx := context.Background()

	q := listquery.Params{Page: 1, Limit: 3, SortBy: "name", SortOrder: "DESC"}
	rows, _, err := ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Name != "Project 25" {
		t.Errorf("first row = %q, want Project 25", rows[0].Name)
	}
	if rows[0].Name < rows[1].Name || rows[1].Name < rows[2].Name {
		t.Errorf("rows not descending: %q, %q, %q", rows[0].Name, rows[1].Name, rows[2].Name)
	}
}

func TestListPageEmptyTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	q := listquery.Params{Page: 1, Limit: 10, SortBy: "id", SortOrder: "ASC"}
	rows, total, err := ListPage[ProjectRow](ctx, db, ProjectListDef, q)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("empty table: total=%d rows=%d", total, len(rows))
	}
}

func TestFindRowByID(t *testing.T) {
	db := openTestDB(t)
	seedProjects(t, db)
	ctx := context.Background()

	row, err := FindRowByID[ProjectRow](ctx, db, ProjectListDef, 3)
	if err != nil {
		t.Fatalf("FindRowByID: %v", err)
	}
	if row.Name != "Project 03" || row.ManagerName != "Sara Odeh" {
		t.Errorf("row = %+v", row)
	}

	_, err = FindRowByID[ProjectRow](ctx, db, ProjectListDef, 999)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("missing id: err = %v, want gorm.ErrRecordNotFound", err)
	}
}
