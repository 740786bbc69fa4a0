package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice status constants. Pending flips to Paid when accumulated payments
// reach the invoice amount; Overdue is set by an external process, never
// automatically here.
const (
	InvoicePending = "Pending"
	InvoicePaid    = "Paid"
	InvoiceOverdue = "Overdue"
)

// Invoice is a billing document raised against a project. Amount is derived
// from the line items at create/update time and is never settable on its own.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	ProjectID     *uint           `gorm:"index" json:"project_id"`
	Client        string          `gorm:"type:varchar(255);not null" json:"client"`
	Date          *time.Time      `json:"date"`
	DueDate       *time.Time      `json:"due_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	GRNRef        string          `gorm:"type:varchar(50)" json:"grn_ref"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceItem is one priced line on an invoice; Amount = Quantity * Rate.
// Items are replaced wholesale when the invoice is updated.
type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	Description string          `gorm:"type:varchar(500);not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// Payment records money received against an invoice. Many payments may apply
// to one invoice.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PaymentID string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"payment_id"`
	InvoiceID uint            `gorm:"not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date      *time.Time      `json:"date"`
	Method    string          `gorm:"type:varchar(50);index" json:"method"`
	Reference string          `gorm:"type:varchar(100)" json:"reference"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
