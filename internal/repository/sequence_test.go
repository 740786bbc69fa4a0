package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"backend/internal/model"
)

func TestNextBusinessIDEmptyTable(t *testing.T) {
	db := openTestDB(t)

	id, err := NextBusinessID(context.Background(), db, TableTasks, "TSK", false)
	if err != nil {
		t.Fatalf("NextBusinessID: %v", err)
	}
	if id != "TSK-001" {
		t.Errorf("id = %q, want TSK-001", id)
	}
}

func TestNextBusinessIDFollowsMaxRowID(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 41; i++ {
		task := model.Task{TaskID: fmt.Sprintf("TSK-%03d", i), Title: "t"}
		if err := db.Create(&task).Error; err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	id, err := NextBusinessID(context.Background(), db, TableTasks, "TSK", false)
	if err != nil {
		t.Fatalf("NextBusinessID: %v", err)
	}
	if id != "TSK-042" {
		t.Errorf("id = %q, want TSK-042", id)
	}
}

func TestNextBusinessIDWithYear(t *testing.T) {
	db := openTestDB(t)

	id, err := NextBusinessID(context.Background(), db, TableInvoices, "INV", true)
	if err != nil {
		t.Fatalf("NextBusinessID: %v", err)
	}
	want := fmt.Sprintf("INV-%d-001", time.Now().Year())
	if id != want {
		t.Errorf("id = %q, want %q", id, want)
	}
}

func TestNextBusinessIDPadsPastThreeDigits(t *testing.T) {
	db := openTestDB(t)

	task := model.Task{TaskID: "TSK-1000", Title: "t"}
	task.ID = 1000
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}

	id, err := NextBusinessID(context.Background(), db, TableTasks, "TSK", false)
	if err != nil {
		t.Fatalf("NextBusinessID: %v", err)
	}
	if id != "TSK-1001" {
		t.Errorf("id = %q, want TSK-1001", id)
	}
}
