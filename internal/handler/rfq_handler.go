package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var rfqListOptions = listquery.Options{
	SortFields: []string{"id", "rfq_id", "client", "project", "location", "status", "due_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "r.status"},
	},
}

type RFQHandler struct {
	rfqs service.RFQService
}

func NewRFQHandler(rfqs service.RFQService) *RFQHandler {
	return &RFQHandler{rfqs: rfqs}
}

func (h *RFQHandler) RegisterRoutes(router *gin.RouterGroup) {
	rfqs := router.Group("/api/rfqs")
	{
		rfqs.GET("", middleware.RequireRole(allRoles...), h.List)
		rfqs.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		rfqs.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		rfqs.POST("", middleware.RequireRole(managerRoles...), h.Create)
		rfqs.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		rfqs.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of RFQs
// @Summary      List RFQs
// @Tags         rfqs
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/rfqs [get]
func (h *RFQHandler) List(c *gin.Context) {
	q := listquery.Parse(c, rfqListOptions)
	rows, total, err := h.rfqs.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("RFQs retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one RFQ by id
// @Summary      Get RFQ
// @Tags         rfqs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "RFQ ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/rfqs/{id} [get]
func (h *RFQHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rfq, err := h.rfqs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("RFQ retrieved successfully", rfq))
}

// Create creates an RFQ
// @Summary      Create RFQ
// @Tags         rfqs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RFQRequest  true  "RFQ payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/rfqs [post]
func (h *RFQHandler) Create(c *gin.Context) {
	var req service.RFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	rfq, err := h.rfqs.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("RFQ created successfully", rfq))
}

// Update updates an RFQ
// @Summary      Update RFQ
// @Tags         rfqs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "RFQ ID"
// @Param        payload  body      service.RFQRequest  true  "RFQ payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/rfqs/{id} [put]
func (h *RFQHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.RFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	rfq, err := h.rfqs.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("RFQ updated successfully", rfq))
}

// Delete removes an RFQ
// @Summary      Delete RFQ
// @Tags         rfqs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "RFQ ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/rfqs/{id} [delete]
func (h *RFQHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rfqs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("RFQ deleted successfully", nil))
}

// Stats returns RFQ counts by status
// @Summary      RFQ statistics
// @Tags         rfqs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/rfqs/stats [get]
func (h *RFQHandler) Stats(c *gin.Context) {
	stats, err := h.rfqs.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("RFQ statistics retrieved successfully", stats))
}
