package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract status constants
const (
	ContractDraft      = "Draft"
	ContractActive     = "Active"
	ContractCompleted  = "Completed"
	ContractTerminated = "Terminated"
)

// Contract is a signed agreement covering a project.
type Contract struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ContractID   string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"contract_id"`
	ProjectID    *uint           `gorm:"index" json:"project_id"`
	Client       string          `gorm:"type:varchar(255);not null" json:"client"`
	ProjectName  string          `gorm:"type:varchar(255)" json:"project_name"`
	Value        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"value"`
	SignedDate   *time.Time      `json:"signed_date"`
	StartDate    *time.Time      `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	Manager      string          `gorm:"type:varchar(255)" json:"manager"`
	ClientRep    string          `gorm:"type:varchar(255)" json:"client_rep"`
	PaymentTerms string          `gorm:"type:text" json:"payment_terms"`
	Status       string          `gorm:"type:varchar(30);not null;default:'Draft';index" json:"status"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// RFQ is an inbound request for quotation, tracked before a contract exists.
type RFQ struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RFQID         string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"rfq_id"`
	Client        string          `gorm:"type:varchar(255);not null" json:"client"`
	Project       string          `gorm:"type:varchar(255)" json:"project"`
	Date          *time.Time      `json:"date"`
	Location      string          `gorm:"type:varchar(255)" json:"location"`
	Value         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"value"`
	ScopeSummary  string          `gorm:"type:text" json:"scope_summary"`
	ContactPerson string          `gorm:"type:varchar(255)" json:"contact_person"`
	ContactEmail  string          `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone  string          `gorm:"type:varchar(50)" json:"contact_phone"`
	Deadline      *time.Time      `json:"deadline"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        string          `gorm:"type:varchar(30);not null;default:'Open';index" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
