package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var taskListOptions = listquery.Options{
	SortFields: []string{"id", "task_id", "title", "status", "priority", "progress", "start_date", "due_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "t.status"},
		{Param: "priority", Column: "t.priority"},
		{Param: "project_id", Column: "t.project_id"},
		{Param: "assignee_id", Column: "t.assignee_id"},
	},
}

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/api/tasks")
	{
		tasks.GET("", middleware.RequireRole(allRoles...), h.List)
		tasks.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		tasks.GET("/project/:id", middleware.RequireRole(allRoles...), h.ListByProject)
		tasks.GET("/assignee/:id", middleware.RequireRole(allRoles...), h.ListByAssignee)
		tasks.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		tasks.POST("", middleware.RequireRole(managerRoles...), h.Create)
		tasks.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		tasks.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of tasks
// @Summary      List tasks
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Items per page"
// @Param        sortBy      query  string  false  "Sort field"
// @Param        sortOrder   query  string  false  "asc or desc"
// @Param        status      query  string  false  "Filter by status"
// @Param        priority    query  string  false  "Filter by priority"
// @Param        project_id  query  int     false  "Filter by project"
// @Param        assignee_id query  int     false  "Filter by assignee"
// @Param        search      query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	q := listquery.Parse(c, taskListOptions)
	rows, total, err := h.tasks.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Tasks retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// ListByProject returns every task of one project
// @Summary      List tasks by project
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  response.Body
// @Router       /api/tasks/project/{id} [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.tasks.ListByProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Tasks retrieved successfully", rows))
}

// ListByAssignee returns every task assigned to one user
// @Summary      List tasks by assignee
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Assignee user ID"
// @Success      200  {object}  response.Body
// @Router       /api/tasks/assignee/{id} [get]
func (h *TaskHandler) ListByAssignee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.tasks.ListByAssignee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Tasks retrieved successfully", rows))
}

// Get returns one task by id
// @Summary      Get task
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Task retrieved successfully", task))
}

// Create creates a task
// @Summary      Create task
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.TaskRequest  true  "Task payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Task created successfully", task))
}

// Update updates a task
// @Summary      Update task
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Task ID"
// @Param        payload  body      service.TaskRequest  true  "Task payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Task updated successfully", task))
}

// Delete removes a task
// @Summary      Delete task
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Task deleted successfully", nil))
}

// Stats returns task counts by status
// @Summary      Task statistics
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.tasks.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Task statistics retrieved successfully", stats))
}
