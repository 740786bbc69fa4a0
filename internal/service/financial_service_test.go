package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openFinancialTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.Project{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Payment{},
		&model.JobCost{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newFinancialService(t *testing.T) (FinancialService, *gorm.DB) {
	t.Helper()
	db := openFinancialTestDB(t)
	svc := NewFinancialService(
		db,
		repository.NewInvoiceRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTransactionManager(db),
	)
	return svc, db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createTestInvoice(t *testing.T, svc FinancialService, items []InvoiceItemInput) *InvoiceDetail {
	t.Helper()
	detail, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		Client: "Al Noor Contracting",
		Date:   "2026-01-10",
		Items:  items,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return detail
}

func TestCreateInvoiceDerivesAmountFromItems(t *testing.T) {
	svc, _ := newFinancialService(t)

	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Concrete pour", Quantity: dec("2"), Rate: dec("50")},
		{Description: "Site survey", Quantity: dec("1"), Rate: dec("30")},
	})

	if !detail.Amount.Equal(dec("130")) {
		t.Errorf("amount = %s, want 130", detail.Amount)
	}
	if detail.Status != model.InvoicePending {
		t.Errorf("status = %q, want %q", detail.Status, model.InvoicePending)
	}
	want := fmt.Sprintf("INV-%d-001", time.Now().Year())
	if detail.InvoiceNumber != want {
		t.Errorf("invoice number = %q, want %q", detail.InvoiceNumber, want)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(detail.Items))
	}
	if !detail.Items[0].Amount.Equal(dec("100")) {
		t.Errorf("first item amount = %s, want 100", detail.Items[0].Amount)
	}
}

func TestCreateInvoiceRejectsNonPositiveItems(t *testing.T) {
	svc, db := newFinancialService(t)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		Client: "Al Noor Contracting",
		Items: []InvoiceItemInput{
			{Description: "Concrete pour", Quantity: dec("0"), Rate: dec("50")},
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}

	var count int64
	db.Model(&model.Invoice{}).Count(&count)
	if count != 0 {
		t.Errorf("invoices persisted = %d, want 0", count)
	}
}

// failingItemsRepo delegates to a real repository but fails the line-item
// insert, forcing the create transaction to roll back mid-flight.
type failingItemsRepo struct {
	repository.InvoiceRepository
}

func (r *failingItemsRepo) CreateItems(ctx context.Context, items []model.InvoiceItem) error {
	return errors.New("items insert failed")
}

func TestCreateInvoiceRollsBackOnItemFailure(t *testing.T) {
	db := openFinancialTestDB(t)
	svc := NewFinancialService(
		db,
		&failingItemsRepo{InvoiceRepository: repository.NewInvoiceRepository(db)},
		repository.NewPaymentRepository(db),
		repository.NewTransactionManager(db),
	)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		Client: "Al Noor Contracting",
		Items: []InvoiceItemInput{
			{Description: "Concrete pour", Quantity: dec("2"), Rate: dec("50")},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var invoices, items int64
	db.Model(&model.Invoice{}).Count(&invoices)
	db.Model(&model.InvoiceItem{}).Count(&items)
	if invoices != 0 || items != 0 {
		t.Errorf("persisted invoices=%d items=%d after rollback, want 0/0", invoices, items)
	}
}

func TestRecordPaymentMarksInvoicePaidWhenCovered(t *testing.T) {
	svc, db := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Steel delivery", Quantity: dec("1"), Rate: dec("100")},
	})

	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("60")})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	var invoice model.Invoice
	db.First(&invoice, detail.ID)
	if invoice.Status != model.InvoicePending {
		t.Errorf("status after partial payment = %q, want %q", invoice.Status, model.InvoicePending)
	}

	row, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("40")})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if row.PaymentID == "" {
		t.Error("payment id not assigned")
	}

	db.First(&invoice, detail.ID)
	if invoice.Status != model.InvoicePaid {
		t.Errorf("status after covering payment = %q, want %q", invoice.Status, model.InvoicePaid)
	}
}

func TestRecordPaymentNeverRegressesStatus(t *testing.T) {
	svc, db := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Steel delivery", Quantity: dec("1"), Rate: dec("100")},
	})

	ctx := context.Background()
	if _, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("100")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("10")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	var invoice model.Invoice
	db.First(&invoice, detail.ID)
	if invoice.Status != model.InvoicePaid {
		t.Errorf("status = %q, want %q", invoice.Status, model.InvoicePaid)
	}
}

func TestRecordPaymentRejectsMissingInvoice(t *testing.T) {
	svc, db := newFinancialService(t)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{InvoiceID: 999, Amount: dec("10")})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not-found error", err)
	}

	var count int64
	db.Model(&model.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("payments persisted = %d, want 0", count)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Steel delivery", Quantity: dec("1"), Rate: dec("100")},
	})

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("-5")})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestUpdateInvoiceReplacesItemsWholesale(t *testing.T) {
	svc, db := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Concrete pour", Quantity: dec("2"), Rate: dec("50")},
		{Description: "Site survey", Quantity: dec("1"), Rate: dec("30")},
	})

	updated, err := svc.UpdateInvoice(context.Background(), detail.ID, UpdateInvoiceRequest{
		Client: "Al Noor Contracting",
		Items: []InvoiceItemInput{
			{Description: "Revised scope", Quantity: dec("3"), Rate: dec("20")},
		},
	})
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	if !updated.Amount.Equal(dec("60")) {
		t.Errorf("amount = %s, want 60", updated.Amount)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(updated.Items))
	}
	if updated.Items[0].Description != "Revised scope" {
		t.Errorf("item description = %q", updated.Items[0].Description)
	}

	var count int64
	db.Model(&model.InvoiceItem{}).Count(&count)
	if count != 1 {
		t.Errorf("item rows = %d, want 1", count)
	}
}

func TestUpdateInvoiceRejectsUnknownStatus(t *testing.T) {
	svc, _ := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Concrete pour", Quantity: dec("1"), Rate: dec("50")},
	})

	_, err := svc.UpdateInvoice(context.Background(), detail.ID, UpdateInvoiceRequest{
		Client: "Al Noor Contracting",
		Status: "Settled",
		Items: []InvoiceItemInput{
			{Description: "Concrete pour", Quantity: dec("1"), Rate: dec("50")},
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDeleteInvoiceRemovesItemsAndPayments(t *testing.T) {
	svc, db := newFinancialService(t)
	detail := createTestInvoice(t, svc, []InvoiceItemInput{
		{Description: "Concrete pour", Quantity: dec("2"), Rate: dec("50")},
	})
	ctx := context.Background()
	if _, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: detail.ID, Amount: dec("40")}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if err := svc.DeleteInvoice(ctx, detail.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}

	var invoices, items, payments int64
	db.Model(&model.Invoice{}).Count(&invoices)
	db.Model(&model.InvoiceItem{}).Count(&items)
	db.Model(&model.Payment{}).Count(&payments)
	if invoices != 0 || items != 0 || payments != 0 {
		t.Errorf("after delete: invoices=%d items=%d payments=%d, want 0/0/0", invoices, items, payments)
	}

	if err := svc.DeleteInvoice(ctx, detail.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("second delete err = %v, want not-found error", err)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _ := newFinancialService(t)

	_, err := svc.GetInvoice(context.Background(), 42)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not-found error", err)
	}
}
