package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// InvoiceRepository covers the invoice header and its line items. Calls made
// inside TransactionManager.RunInTx share that transaction via the context.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	FindRowByID(ctx context.Context, id uint) (*InvoiceRow, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CreateItems(ctx context.Context, items []model.InvoiceItem) error
	ItemsByInvoiceID(ctx context.Context, invoiceID uint) ([]model.InvoiceItem, error)
	DeleteItemsByInvoiceID(ctx context.Context, invoiceID uint) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindRowByID(ctx context.Context, id uint) (*InvoiceRow, error) {
	return FindRowByID[InvoiceRow](ctx, r.db, InvoiceListDef, id)
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return GetDB(ctx, r.db).Model(&model.Invoice{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) CreateItems(ctx context.Context, items []model.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *invoiceRepository) ItemsByInvoiceID(ctx context.Context, invoiceID uint) ([]model.InvoiceItem, error) {
	var items []model.InvoiceItem
	if err := GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *invoiceRepository) DeleteItemsByInvoiceID(ctx context.Context, invoiceID uint) error {
	return GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error
}
