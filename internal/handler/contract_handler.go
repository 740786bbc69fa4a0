package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var contractListOptions = listquery.Options{
	SortFields: []string{"id", "contract_id", "client", "project_name", "value", "status", "start_date", "end_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "c.status"},
	},
}

type ContractHandler struct {
	contracts service.ContractService
}

func NewContractHandler(contracts service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

func (h *ContractHandler) RegisterRoutes(router *gin.RouterGroup) {
	contracts := router.Group("/api/contracts")
	{
		contracts.GET("", middleware.RequireRole(allRoles...), h.List)
		contracts.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		contracts.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		contracts.POST("", middleware.RequireRole(managerRoles...), h.Create)
		contracts.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		contracts.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of contracts
// @Summary      List contracts
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	q := listquery.Parse(c, contractListOptions)
	rows, total, err := h.contracts.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Contracts retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one contract by id
// @Summary      Get contract
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Contract ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Contract retrieved successfully", contract))
}

// Create creates a contract
// @Summary      Create contract
// @Tags         contracts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ContractRequest  true  "Contract payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req service.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	contract, err := h.contracts.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Contract created successfully", contract))
}

// Update updates a contract
// @Summary      Update contract
// @Tags         contracts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Contract ID"
// @Param        payload  body      service.ContractRequest  true  "Contract payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	contract, err := h.contracts.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Contract updated successfully", contract))
}

// Delete removes a contract
// @Summary      Delete contract
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Contract ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/contracts/{id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Contract deleted successfully", nil))
}

// Stats returns contract counts and total value
// @Summary      Contract statistics
// @Tags         contracts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/contracts/stats [get]
func (h *ContractHandler) Stats(c *gin.Context) {
	stats, err := h.contracts.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Contract statistics retrieved successfully", stats))
}
