package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

type CreateInvoiceRequest struct {
	ProjectID *uint              `json:"project_id"`
	Client    string             `json:"client" binding:"required"`
	Date      string             `json:"date"`
	DueDate   string             `json:"due_date"`
	GRNRef    string             `json:"grn_ref"`
	Notes     string             `json:"notes"`
	Items     []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

type UpdateInvoiceRequest struct {
	ProjectID *uint              `json:"project_id"`
	Client    string             `json:"client" binding:"required"`
	Date      string             `json:"date"`
	DueDate   string             `json:"due_date"`
	GRNRef    string             `json:"grn_ref"`
	Notes     string             `json:"notes"`
	Status    string             `json:"status"`
	Items     []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

type RecordPaymentRequest struct {
	InvoiceID uint            `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// InvoiceDetail is an invoice row joined with its line items and payments.
type InvoiceDetail struct {
	repository.InvoiceRow
	Items    []model.InvoiceItem `json:"items"`
	Payments []model.Payment     `json:"payments"`
}

type InvoiceStats struct {
	TotalInvoices      int64           `json:"total_invoices"`
	TotalInvoiceAmount decimal.Decimal `json:"total_invoice_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PendingAmount      decimal.Decimal `json:"pending_amount"`
	OverdueAmount      decimal.Decimal `json:"overdue_amount"`
}

type PaymentStats struct {
	TotalPayments      int64           `json:"total_payments"`
	TotalPaymentAmount decimal.Decimal `json:"total_payment_amount"`
}

type ProjectFinancialSummary struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Budget           decimal.Decimal `json:"budget"`
	ActualCost       decimal.Decimal `json:"actual_cost"`
	InvoicesRaised   decimal.Decimal `json:"invoices_raised"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
}

type FinancialStats struct {
	Invoices InvoiceStats              `json:"invoices"`
	Payments PaymentStats              `json:"payments"`
	Projects []ProjectFinancialSummary `json:"projects"`
}

type ProjectFinancials struct {
	Project  model.Project           `json:"project"`
	Invoices []model.Invoice         `json:"invoices"`
	Payments []repository.PaymentRow `json:"payments"`
	JobCosts []model.JobCost         `json:"job_costs"`
}

// --- Interface ---

// FinancialService owns the multi-statement write workflows: invoice
// create/update/delete with line items, and payment recording with the
// automatic Pending → Paid status transition.
type FinancialService interface {
	ListInvoices(ctx context.Context, q listquery.Params) ([]repository.InvoiceRow, int64, error)
	GetInvoice(ctx context.Context, id uint) (*InvoiceDetail, error)
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceDetail, error)
	UpdateInvoice(ctx context.Context, id uint, req UpdateInvoiceRequest) (*InvoiceDetail, error)
	DeleteInvoice(ctx context.Context, id uint) error
	ListPayments(ctx context.Context, q listquery.Params) ([]repository.PaymentRow, int64, error)
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*repository.PaymentRow, error)
	GetFinancialStats(ctx context.Context) (*FinancialStats, error)
	GetProjectFinancials(ctx context.Context, projectID uint) (*ProjectFinancials, error)
}

type financialService struct {
	db          *gorm.DB
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	txManager   repository.TransactionManager
}

func NewFinancialService(
	db *gorm.DB,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	txManager repository.TransactionManager,
) FinancialService {
	return &financialService{
		db:          db,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
	}
}

// --- Invoices ---

func (s *financialService) ListInvoices(ctx context.Context, q listquery.Params) ([]repository.InvoiceRow, int64, error) {
	rows, total, err := repository.ListPage[repository.InvoiceRow](ctx, s.db, repository.InvoiceListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve invoices", err)
	}
	return rows, total, nil
}

func (s *financialService) GetInvoice(ctx context.Context, id uint) (*InvoiceDetail, error) {
	row, err := s.invoiceRepo.FindRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Invoice not found")
		}
		return nil, apperr.Internal("Failed to retrieve invoice", err)
	}

	items, err := s.invoiceRepo.ItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve invoice", err)
	}
	payments, err := s.paymentRepo.ListByInvoiceID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve invoice", err)
	}

	return &InvoiceDetail{InvoiceRow: *row, Items: items, Payments: payments}, nil
}

// validateItems checks the line-item invariants and returns the derived
// header amount: the sum of quantity×rate over all items.
func validateItems(items []InvoiceItemInput) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, apperr.Validation("Invoice requires at least one line item")
	}
	amount := decimal.Zero
	for _, item := range items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, apperr.Validation("Line item quantity must be positive")
		}
		if item.Rate.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, apperr.Validation("Line item rate must be positive")
		}
		amount = amount.Add(item.Quantity.Mul(item.Rate))
	}
	return amount, nil
}

func buildItems(invoiceID uint, inputs []InvoiceItemInput) []model.InvoiceItem {
	items := make([]model.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, model.InvoiceItem{
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      in.Quantity.Mul(in.Rate),
		})
	}
	return items
}

func (s *financialService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceDetail, error) {
	amount, err := validateItems(req.Items)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("Invalid date")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, apperr.Validation("Invalid due_date")
	}

	invoice := model.Invoice{
		ProjectID: req.ProjectID,
		Client:    req.Client,
		Date:      date,
		DueDate:   dueDate,
		Amount:    amount,
		GRNRef:    req.GRNRef,
		Notes:     req.Notes,
		Status:    model.InvoicePending,
	}

	// Header insert and item inserts are one unit: on any failure nothing
	// persists.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, genErr := repository.NextBusinessID(txCtx, s.db, repository.TableInvoices, "INV", true)
		if genErr != nil {
			return genErr
		}
		invoice.InvoiceNumber = number

		if createErr := s.invoiceRepo.Create(txCtx, &invoice); createErr != nil {
			return createErr
		}
		return s.invoiceRepo.CreateItems(txCtx, buildItems(invoice.ID, req.Items))
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create invoice", err)
	}

	return s.GetInvoice(ctx, invoice.ID)
}

func (s *financialService) UpdateInvoice(ctx context.Context, id uint, req UpdateInvoiceRequest) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Invoice not found")
		}
		return nil, apperr.Internal("Failed to update invoice", err)
	}

	amount, err := validateItems(req.Items)
	if err != nil {
		return nil, err
	}

	if req.Status != "" &&
		req.Status != model.InvoicePending && req.Status != model.InvoicePaid && req.Status != model.InvoiceOverdue {
		return nil, apperr.Validation("Invalid invoice status")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("Invalid date")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, apperr.Validation("Invalid due_date")
	}

	invoice.ProjectID = req.ProjectID
	invoice.Client = req.Client
	invoice.Date = date
	invoice.DueDate = dueDate
	invoice.Amount = amount
	invoice.GRNRef = req.GRNRef
	invoice.Notes = req.Notes
	if req.Status != "" {
		invoice.Status = req.Status
	}

	// Items are replaced wholesale: update header, delete existing items,
	// re-insert the submitted set, all or nothing.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return updateErr
		}
		if delErr := s.invoiceRepo.DeleteItemsByInvoiceID(txCtx, id); delErr != nil {
			return delErr
		}
		return s.invoiceRepo.CreateItems(txCtx, buildItems(id, req.Items))
	})
	if err != nil {
		return nil, apperr.Internal("Failed to update invoice", err)
	}

	return s.GetInvoice(ctx, id)
}

func (s *financialService) DeleteInvoice(ctx context.Context, id uint) error {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Invoice not found")
		}
		return apperr.Internal("Failed to delete invoice", err)
	}

	// Dependents go first: line items, then payments, then the header.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.invoiceRepo.DeleteItemsByInvoiceID(txCtx, id); delErr != nil {
			return delErr
		}
		if delErr := s.paymentRepo.DeleteByInvoiceID(txCtx, id); delErr != nil {
			return delErr
		}
		return s.invoiceRepo.Delete(txCtx, id)
	})
	if err != nil {
		return apperr.Internal("Failed to delete invoice", err)
	}
	return nil
}

// --- Payments ---

func (s *financialService) ListPayments(ctx context.Context, q listquery.Params) ([]repository.PaymentRow, int64, error) {
	rows, total, err := repository.ListPage[repository.PaymentRow](ctx, s.db, repository.PaymentListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve payments", err)
	}
	return rows, total, nil
}

func (s *financialService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*repository.PaymentRow, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validation("Payment amount must be positive")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("Invalid date")
	}

	// Existence check happens before the transaction opens so a missing
	// invoice never costs a rollback.
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Invoice not found")
		}
		return nil, apperr.Internal("Failed to record payment", err)
	}

	payment := model.Payment{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Date:      date,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	// Insert the payment, recompute paid-to-date including it, and flip the
	// invoice to Paid when covered. Status only ever moves forward here; a
	// short payment leaves it untouched.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		paymentID, genErr := repository.NextBusinessID(txCtx, s.db, repository.TablePayments, "PAY", true)
		if genErr != nil {
			return genErr
		}
		payment.PaymentID = paymentID

		if createErr := s.paymentRepo.Create(txCtx, &payment); createErr != nil {
			return createErr
		}

		totalPaid, sumErr := s.paymentRepo.SumByInvoiceID(txCtx, req.InvoiceID)
		if sumErr != nil {
			return sumErr
		}

		if totalPaid.GreaterThanOrEqual(invoice.Amount) {
			return s.invoiceRepo.UpdateStatus(txCtx, req.InvoiceID, model.InvoicePaid)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal("Failed to record payment", err)
	}

	row, err := s.paymentRepo.FindRowByID(ctx, payment.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to record payment", err)
	}
	return row, nil
}

// --- Statistics ---

func (s *financialService) GetFinancialStats(ctx context.Context) (*FinancialStats, error) {
	stats := &FinancialStats{}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_invoices,
			COALESCE(SUM(amount), 0) AS total_invoice_amount,
			COALESCE(SUM(CASE WHEN status = 'Paid' THEN amount ELSE 0 END), 0) AS paid_amount,
			COALESCE(SUM(CASE WHEN status = 'Pending' THEN amount ELSE 0 END), 0) AS pending_amount,
			COALESCE(SUM(CASE WHEN status = 'Overdue' THEN amount ELSE 0 END), 0) AS overdue_amount
		FROM invoices
	`).Scan(&stats.Invoices).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve financial statistics", err)
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total_payments, COALESCE(SUM(amount), 0) AS total_payment_amount
		FROM payments
	`).Scan(&stats.Payments).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve financial statistics", err)
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT
			p.id, p.name, p.budget,
			COALESCE(SUM(jc.actual_cost), 0) AS actual_cost,
			COALESCE(SUM(i.amount), 0) AS invoices_raised,
			COALESCE(SUM(pay.amount), 0) AS payments_received
		FROM projects p
		LEFT JOIN job_costs jc ON jc.project_id = p.id
		LEFT JOIN invoices i ON i.project_id = p.id
		LEFT JOIN payments pay ON pay.invoice_id = i.id
		GROUP BY p.id, p.name, p.budget
	`).Scan(&stats.Projects).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve financial statistics", err)
	}

	return stats, nil
}

func (s *financialService) GetProjectFinancials(ctx context.Context, projectID uint) (*ProjectFinancials, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to retrieve project financials", err)
	}

	out := &ProjectFinancials{Project: project}

	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).Order("date DESC").Find(&out.Invoices).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve project financials", err)
	}

	err = s.db.WithContext(ctx).Raw(
		"SELECT "+repository.PaymentListDef.Select+" FROM "+repository.PaymentListDef.From+
			" WHERE i.project_id = ? ORDER BY p.date DESC", projectID,
	).Scan(&out.Payments).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve project financials", err)
	}

	err = s.db.WithContext(ctx).
		Where("project_id = ?", projectID).Find(&out.JobCosts).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve project financials", err)
	}

	return out, nil
}
