package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var invoiceListOptions = listquery.Options{
	SortFields: []string{"id", "invoice_number", "client", "amount", "status", "date", "due_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "i.status"},
		{Param: "project_id", Column: "i.project_id"},
	},
}

var paymentListOptions = listquery.Options{
	SortFields: []string{"id", "payment_id", "amount", "date", "method", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "method", Column: "p.method"},
		{Param: "invoice_id", Column: "p.invoice_id"},
	},
}

type FinancialHandler struct {
	financial service.FinancialService
}

func NewFinancialHandler(financial service.FinancialService) *FinancialHandler {
	return &FinancialHandler{financial: financial}
}

func (h *FinancialHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", middleware.RequireRole(allRoles...), h.ListInvoices)
		invoices.GET("/:id", middleware.RequireRole(allRoles...), h.GetInvoice)
		invoices.POST("", middleware.RequireRole(financeRoles...), h.CreateInvoice)
		invoices.PUT("/:id", middleware.RequireRole(financeRoles...), h.UpdateInvoice)
		invoices.DELETE("/:id", middleware.RequireRole(financeRoles...), h.DeleteInvoice)
	}

	payments := router.Group("/api/payments")
	{
		payments.GET("", middleware.RequireRole(allRoles...), h.ListPayments)
		payments.POST("", middleware.RequireRole(financeRoles...), h.RecordPayment)
	}

	financials := router.Group("/api/financials")
	{
		financials.GET("/stats", middleware.RequireRole(financeRoles...), h.Stats)
		financials.GET("/project/:id", middleware.RequireRole(financeRoles...), h.ProjectFinancials)
	}
}

// ListInvoices returns a paginated list of invoices
// @Summary      List invoices
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status (Pending, Paid, Overdue)"
// @Param        project_id query  int     false  "Filter by project"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/invoices [get]
func (h *FinancialHandler) ListInvoices(c *gin.Context) {
	q := listquery.Parse(c, invoiceListOptions)
	rows, total, err := h.financial.ListInvoices(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Invoices retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// GetInvoice returns one invoice with its line items and payments
// @Summary      Get invoice
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/invoices/{id} [get]
func (h *FinancialHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	invoice, err := h.financial.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Invoice retrieved successfully", invoice))
}

// CreateInvoice creates an invoice with its line items in one transaction
// @Summary      Create invoice
// @Tags         financials
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Invoice payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/invoices [post]
func (h *FinancialHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	invoice, err := h.financial.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Invoice created successfully", invoice))
}

// UpdateInvoice updates an invoice header and replaces its line items
// @Summary      Update invoice
// @Tags         financials
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Invoice ID"
// @Param        payload  body      service.UpdateInvoiceRequest  true  "Invoice payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/invoices/{id} [put]
func (h *FinancialHandler) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	invoice, err := h.financial.UpdateInvoice(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Invoice updated successfully", invoice))
}

// DeleteInvoice removes an invoice with its items and payments
// @Summary      Delete invoice
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/invoices/{id} [delete]
func (h *FinancialHandler) DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.financial.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Invoice deleted successfully", nil))
}

// ListPayments returns a paginated list of payments
// @Summary      List payments
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        method     query  string  false  "Filter by payment method"
// @Param        invoice_id query  int     false  "Filter by invoice"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/payments [get]
func (h *FinancialHandler) ListPayments(c *gin.Context) {
	q := listquery.Parse(c, paymentListOptions)
	rows, total, err := h.financial.ListPayments(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Payments retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// RecordPayment records a payment against an invoice; the invoice flips to
// Paid once payments cover its amount
// @Summary      Record payment
// @Tags         financials
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RecordPaymentRequest  true  "Payment payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/payments [post]
func (h *FinancialHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	payment, err := h.financial.RecordPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Payment recorded successfully", payment))
}

// Stats returns the financial overview
// @Summary      Financial statistics
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/financials/stats [get]
func (h *FinancialHandler) Stats(c *gin.Context) {
	stats, err := h.financial.GetFinancialStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Financial statistics retrieved successfully", stats))
}

// ProjectFinancials returns invoices, payments and job costs of one project
// @Summary      Project financials
// @Tags         financials
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/financials/project/{id} [get]
func (h *FinancialHandler) ProjectFinancials(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	financials, err := h.financial.GetProjectFinancials(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project financials retrieved successfully", financials))
}
