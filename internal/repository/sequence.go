package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Table name constants for business-identifier generation. Only these values
// ever reach NextBusinessID, so the table name can be spliced into SQL.
const (
	TableTasks       = "tasks"
	TableContracts   = "contracts"
	TableRFQs        = "rfqs"
	TableInvoices    = "invoices"
	TablePayments    = "payments"
	TableMaterials   = "materials"
	TableGRNs        = "grns"
	TableInspections = "quality_inspections"
	TableRisks       = "risks"
	TableJobCosts    = "job_costs"
	TableDrawings    = "drawings"
)

// NextBusinessID derives the next human-readable sequential identifier for an
// entity table from its current maximum numeric row id: "PREFIX-042", or
// "PREFIX-2024-042" when withYear is set (financial documents). The read
// participates in the caller's transaction via GetDB; the unique index on the
// business-id column turns a concurrent duplicate into a rolled-back insert
// instead of persisted corruption.
func NextBusinessID(ctx context.Context, db *gorm.DB, table, prefix string, withYear bool) (string, error) {
	var maxID int64
	if err := GetDB(ctx, db).Raw("SELECT COALESCE(MAX(id), 0) FROM " + table).Scan(&maxID).Error; err != nil {
		return "", err
	}

	next := maxID + 1
	if withYear {
		return fmt.Sprintf("%s-%d-%03d", prefix, time.Now().Year(), next), nil
	}
	return fmt.Sprintf("%s-%03d", prefix, next), nil
}
