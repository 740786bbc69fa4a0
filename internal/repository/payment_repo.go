package repository

import (
	"context"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindRowByID(ctx context.Context, id uint) (*PaymentRow, error)
	ListByInvoiceID(ctx context.Context, invoiceID uint) ([]model.Payment, error)
	SumByInvoiceID(ctx context.Context, invoiceID uint) (decimal.Decimal, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uint) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) FindRowByID(ctx context.Context, id uint) (*PaymentRow, error) {
	return FindRowByID[PaymentRow](ctx, r.db, PaymentListDef, id)
}

func (r *paymentRepository) ListByInvoiceID(ctx context.Context, invoiceID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumByInvoiceID returns the total paid to date on an invoice, including any
// payment inserted earlier in the same transaction.
func (r *paymentRepository) SumByInvoiceID(ctx context.Context, invoiceID uint) (decimal.Decimal, error) {
	var total struct {
		Total decimal.Decimal
	}
	err := GetDB(ctx, r.db).Raw(
		"SELECT COALESCE(SUM(amount), 0) AS total FROM payments WHERE invoice_id = ?", invoiceID,
	).Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total.Total, nil
}

func (r *paymentRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uint) error {
	return GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).Delete(&model.Payment{}).Error
}
