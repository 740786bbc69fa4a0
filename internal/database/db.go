package database

import (
	"backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
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
		&model.Risk{},
		&model.QualityInspection{},
		&model.Resource{},
		&model.JobCost{},
		&model.Drawing{},
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate models")
	}

	return db, nil
}

// Close releases the underlying connection pool; called on shutdown.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
