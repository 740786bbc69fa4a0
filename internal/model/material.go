package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material procurement status constants
const (
	MaterialPlanned   = "Planned"
	MaterialOrdered   = "Ordered"
	MaterialDelivered = "Delivered"
)

// Material is a procured item tracked against a project and purchase order.
type Material struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	MaterialID  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"material_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	ProjectID   *uint           `gorm:"index" json:"project_id"`
	Supplier    string          `gorm:"type:varchar(255);index" json:"supplier"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"qty"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"unit_cost"`
	PONo        string          `gorm:"type:varchar(50)" json:"po_no"`
	PlannedDate *time.Time      `json:"planned_date"`
	ActualDate  *time.Time      `json:"actual_date"`
	Status      string          `gorm:"type:varchar(30);not null;default:'Planned';index" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// GRN is a goods-received note confirming delivery of a material order.
type GRN struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	GRNNumber         string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"grn_number"`
	MaterialID        uint            `gorm:"not null;index" json:"material_id"`
	ReceiptDate       *time.Time      `json:"receipt_date"`
	ReceivedQty       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"received_qty"`
	ReceivedCondition string          `gorm:"type:varchar(100)" json:"received_condition"`
	InspectedBy       string          `gorm:"type:varchar(255)" json:"inspected_by"`
	StorageLocation   string          `gorm:"type:varchar(255)" json:"storage_location"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
