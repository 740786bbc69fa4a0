package repository

import (
	"testing"

	"backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Project{},
		&model.Milestone{},
		&model.Task{},
		&model.Contract{},
		&model.RFQ{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Payment{},
		&model.Material{},
		&model.GRN{},
		&model.QualityInspection{},
		&model.Risk{},
		&model.Resource{},
		&model.JobCost{},
		&model.Drawing{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
