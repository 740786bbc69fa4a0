package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var jobCostListOptions = listquery.Options{
	SortFields: []string{"id", "job_id", "project", "task", "estimated_cost", "actual_cost", "variance", "status", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "jc.status"},
		{Param: "project_id", Column: "jc.project_id"},
	},
}

type JobCostHandler struct {
	jobCosts service.JobCostService
}

func NewJobCostHandler(jobCosts service.JobCostService) *JobCostHandler {
	return &JobCostHandler{jobCosts: jobCosts}
}

func (h *JobCostHandler) RegisterRoutes(router *gin.RouterGroup) {
	jobCosts := router.Group("/api/job-costs")
	{
		jobCosts.GET("", middleware.RequireRole(allRoles...), h.List)
		jobCosts.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		jobCosts.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		jobCosts.POST("", middleware.RequireRole(financeRoles...), h.Create)
		jobCosts.PUT("/:id", middleware.RequireRole(financeRoles...), h.Update)
		jobCosts.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of job costs
// @Summary      List job costs
// @Tags         job-costs
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
// @Router       /api/job-costs [get]
func (h *JobCostHandler) List(c *gin.Context) {
	q := listquery.Parse(c, jobCostListOptions)
	rows, total, err := h.jobCosts.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Job costs retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one job cost by id
// @Summary      Get job cost
// @Tags         job-costs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Job cost ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/job-costs/{id} [get]
func (h *JobCostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	jobCost, err := h.jobCosts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Job cost retrieved successfully", jobCost))
}

// Create creates a job cost record
// @Summary      Create job cost
// @Tags         job-costs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.JobCostRequest  true  "Job cost payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/job-costs [post]
func (h *JobCostHandler) Create(c *gin.Context) {
	var req service.JobCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	jobCost, err := h.jobCosts.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Job cost created successfully", jobCost))
}

// Update updates a job cost record
// @Summary      Update job cost
// @Tags         job-costs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Job cost ID"
// @Param        payload  body      service.JobCostRequest  true  "Job cost payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/job-costs/{id} [put]
func (h *JobCostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.JobCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	jobCost, err := h.jobCosts.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Job cost updated successfully", jobCost))
}

// Delete removes a job cost record
// @Summary      Delete job cost
// @Tags         job-costs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Job cost ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/job-costs/{id} [delete]
func (h *JobCostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.jobCosts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Job cost deleted successfully", nil))
}

// Stats returns job cost totals
// @Summary      Job cost statistics
// @Tags         job-costs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/job-costs/stats [get]
func (h *JobCostHandler) Stats(c *gin.Context) {
	stats, err := h.jobCosts.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Job cost statistics retrieved successfully", stats))
}
