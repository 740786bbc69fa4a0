package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var riskListOptions = listquery.Options{
	SortFields: []string{"id", "risk_id", "level", "impact", "status", "owner", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "level", Column: "r.level"},
		{Param: "impact", Column: "r.impact"},
		{Param: "status", Column: "r.status"},
		{Param: "project_id", Column: "r.project_id"},
	},
}

type RiskHandler struct {
	risks service.RiskService
}

func NewRiskHandler(risks service.RiskService) *RiskHandler {
	return &RiskHandler{risks: risks}
}

func (h *RiskHandler) RegisterRoutes(router *gin.RouterGroup) {
	risks := router.Group("/api/risks")
	{
		risks.GET("", middleware.RequireRole(allRoles...), h.List)
		risks.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		risks.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		risks.POST("", middleware.RequireRole(managerRoles...), h.Create)
		risks.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		risks.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of risks
// @Summary      List risks
// @Tags         risks
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        level      query  string  false  "Filter by level"
// @Param        impact     query  string  false  "Filter by impact"
// @Param        status     query  string  false  "Filter by status"
// @Param        project_id query  int     false  "Filter by project"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/risks [get]
func (h *RiskHandler) List(c *gin.Context) {
	q := listquery.Parse(c, riskListOptions)
	rows, total, err := h.risks.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Risks retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one risk by id
// @Summary      Get risk
// @Tags         risks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Risk ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/risks/{id} [get]
func (h *RiskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	risk, err := h.risks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Risk retrieved successfully", risk))
}

// Create creates a risk
// @Summary      Create risk
// @Tags         risks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RiskRequest  true  "Risk payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/risks [post]
func (h *RiskHandler) Create(c *gin.Context) {
	var req service.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	risk, err := h.risks.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Risk created successfully", risk))
}

// Update updates a risk
// @Summary      Update risk
// @Tags         risks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Risk ID"
// @Param        payload  body      service.RiskRequest  true  "Risk payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/risks/{id} [put]
func (h *RiskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	risk, err := h.risks.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Risk updated successfully", risk))
}

// Delete removes a risk
// @Summary      Delete risk
// @Tags         risks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Risk ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/risks/{id} [delete]
func (h *RiskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.risks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Risk deleted successfully", nil))
}

// Stats returns risk counts
// @Summary      Risk statistics
// @Tags         risks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/risks/stats [get]
func (h *RiskHandler) Stats(c *gin.Context) {
	stats, err := h.risks.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Risk statistics retrieved successfully", stats))
}
