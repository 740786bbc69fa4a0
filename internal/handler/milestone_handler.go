package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var milestoneListOptions = listquery.Options{
	SortFields: []string{"id", "name", "planned_date", "actual_date", "status", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "m.status"},
		{Param: "project_id", Column: "m.project_id"},
	},
}

type MilestoneHandler struct {
	milestones service.MilestoneService
}

func NewMilestoneHandler(milestones service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

func (h *MilestoneHandler) RegisterRoutes(router *gin.RouterGroup) {
	milestones := router.Group("/api/milestones")
	{
		milestones.GET("", middleware.RequireRole(allRoles...), h.List)
		milestones.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		milestones.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		milestones.POST("", middleware.RequireRole(managerRoles...), h.Create)
		milestones.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		milestones.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of milestones
// @Summary      List milestones
// @Tags         milestones
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        project_id query  int     false  "Filter by project"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/milestones [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	q := listquery.Parse(c, milestoneListOptions)
	rows, total, err := h.milestones.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Milestones retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one milestone by id
// @Summary      Get milestone
// @Tags         milestones
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Milestone ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/milestones/{id} [get]
func (h *MilestoneHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	milestone, err := h.milestones.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Milestone retrieved successfully", milestone))
}

// Create creates a milestone
// @Summary      Create milestone
// @Tags         milestones
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MilestoneRequest  true  "Milestone payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/milestones [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req service.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	milestone, err := h.milestones.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Milestone created successfully", milestone))
}

// Update updates a milestone
// @Summary      Update milestone
// @Tags         milestones
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Milestone ID"
// @Param        payload  body      service.MilestoneRequest  true  "Milestone payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/milestones/{id} [put]
func (h *MilestoneHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	milestone, err := h.milestones.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Milestone updated successfully", milestone))
}

// Delete removes a milestone
// @Summary      Delete milestone
// @Tags         milestones
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Milestone ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/milestones/{id} [delete]
func (h *MilestoneHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.milestones.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Milestone deleted successfully", nil))
}

// Stats returns milestone counts
// @Summary      Milestone statistics
// @Tags         milestones
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/milestones/stats [get]
func (h *MilestoneHandler) Stats(c *gin.Context) {
	stats, err := h.milestones.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Milestone statistics retrieved successfully", stats))
}
