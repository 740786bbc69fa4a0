package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobCost tracks estimated versus actual cost for one piece of project work.
// EstimatedCost, ActualCost and Variance are derived from the component
// figures at write time.
type JobCost struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	JobID             string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"job_id"`
	ProjectID         *uint           `gorm:"index" json:"project_id"`
	Project           string          `gorm:"type:varchar(255)" json:"project"`
	Task              string          `gorm:"type:varchar(255)" json:"task"`
	Resource          string          `gorm:"type:varchar(255)" json:"resource"`
	EstimatedLabor    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"estimated_labor"`
	EstimatedMaterial decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"estimated_material"`
	Overhead          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"overhead"`
	EstimatedCost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"estimated_cost"`
	ActualLabor       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"actual_labor"`
	ActualMaterial    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"actual_material"`
	ActualOverhead    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"actual_overhead"`
	ActualCost        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"actual_cost"`
	Variance          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"variance"`
	Status            string          `gorm:"type:varchar(30);not null;default:'Open';index" json:"status"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
