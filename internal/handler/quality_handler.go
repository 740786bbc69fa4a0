package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var inspectionListOptions = listquery.Options{
	SortFields: []string{"id", "inspection_id", "date", "inspector", "status", "severity", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "q.status"},
		{Param: "hse_issues", Column: "q.hse_issues"},
		{Param: "task_id", Column: "q.task_id"},
	},
}

type QualityHandler struct {
	quality service.QualityService
}

func NewQualityHandler(quality service.QualityService) *QualityHandler {
	return &QualityHandler{quality: quality}
}

func (h *QualityHandler) RegisterRoutes(router *gin.RouterGroup) {
	inspections := router.Group("/api/inspections")
	{
		inspections.GET("", middleware.RequireRole(allRoles...), h.List)
		inspections.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		inspections.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		inspections.POST("", middleware.RequireRole(qualityRoles...), h.Create)
		inspections.PUT("/:id", middleware.RequireRole(qualityRoles...), h.Update)
		inspections.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of quality inspections
// @Summary      List inspections
// @Tags         quality
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        hse_issues query  string  false  "Filter by HSE issue flag"
// @Param        task_id    query  int     false  "Filter by task"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/inspections [get]
func (h *QualityHandler) List(c *gin.Context) {
	q := listquery.Parse(c, inspectionListOptions)
	rows, total, err := h.quality.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Inspections retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one inspection by id
// @Summary      Get inspection
// @Tags         quality
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Inspection ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/inspections/{id} [get]
func (h *QualityHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inspection, err := h.quality.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Inspection retrieved successfully", inspection))
}

// Create creates an inspection
// @Summary      Create inspection
// @Tags         quality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.InspectionRequest  true  "Inspection payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/inspections [post]
func (h *QualityHandler) Create(c *gin.Context) {
	var req service.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	inspection, err := h.quality.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Inspection created successfully", inspection))
}

// Update updates an inspection
// @Summary      Update inspection
// @Tags         quality
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Inspection ID"
// @Param        payload  body      service.InspectionRequest  true  "Inspection payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/inspections/{id} [put]
func (h *QualityHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	inspection, err := h.quality.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Inspection updated successfully", inspection))
}

// Delete removes an inspection
// @Summary      Delete inspection
// @Tags         quality
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Inspection ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/inspections/{id} [delete]
func (h *QualityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.quality.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Inspection deleted successfully", nil))
}

// Stats returns inspection counts
// @Summary      Quality statistics
// @Tags         quality
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/inspections/stats [get]
func (h *QualityHandler) Stats(c *gin.Context) {
	stats, err := h.quality.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Quality statistics retrieved successfully", stats))
}
