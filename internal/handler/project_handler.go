package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var projectListOptions = listquery.Options{
	SortFields: []string{"id", "name", "client", "status", "priority", "start_date", "end_date", "budget", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "p.status"},
		{Param: "priority", Column: "p.priority"},
		{Param: "manager_id", Column: "p.manager_id"},
	},
}

type ProjectHandler struct {
	projects service.ProjectService
}

func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/api/projects")
	{
		projects.GET("", middleware.RequireRole(allRoles...), h.List)
		projects.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		projects.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		projects.POST("", middleware.RequireRole(managerRoles...), h.Create)
		projects.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		projects.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of projects
// @Summary      List projects
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        limit      query  int     false  "Items per page (default 10, max 100)"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        priority   query  string  false  "Filter by priority"
// @Param        manager_id query  int     false  "Filter by manager"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	q := listquery.Parse(c, projectListOptions)
	rows, total, err := h.projects.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Projects retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one project by id
// @Summary      Get project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project retrieved successfully", project))
}

// Create creates a project
// @Summary      Create project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ProjectRequest  true  "Project payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	project, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Project created successfully", project))
}

// Update updates a project
// @Summary      Update project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Project ID"
// @Param        payload  body      service.ProjectRequest  true  "Project payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	project, err := h.projects.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project updated successfully", project))
}

// Delete removes a project
// @Summary      Delete project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project deleted successfully", nil))
}

// Stats returns project counts by status
// @Summary      Project statistics
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/projects/stats [get]
func (h *ProjectHandler) Stats(c *gin.Context) {
	stats, err := h.projects.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project statistics retrieved successfully", stats))
}
