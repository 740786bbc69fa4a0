package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var resourceListOptions = listquery.Options{
	SortFields: []string{"id", "name", "role", "rate", "availability", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "role", Column: "r.role"},
		{Param: "availability", Column: "r.availability"},
	},
}

type ResourceHandler struct {
	resources service.ResourceService
}

func NewResourceHandler(resources service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

func (h *ResourceHandler) RegisterRoutes(router *gin.RouterGroup) {
	resources := router.Group("/api/resources")
	{
		resources.GET("", middleware.RequireRole(allRoles...), h.List)
		resources.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		resources.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		resources.POST("", middleware.RequireRole(managerRoles...), h.Create)
		resources.PUT("/:id", middleware.RequireRole(managerRoles...), h.Update)
		resources.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of resources
// @Summary      List resources
// @Tags         resources
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number"
// @Param        limit        query  int     false  "Items per page"
// @Param        sortBy       query  string  false  "Sort field"
// @Param        sortOrder    query  string  false  "asc or desc"
// @Param        role         query  string  false  "Filter by role"
// @Param        availability query  string  false  "Filter by availability"
// @Param        search       query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	q := listquery.Parse(c, resourceListOptions)
	rows, total, err := h.resources.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Resources retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one resource by id
// @Summary      Get resource
// @Tags         resources
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Resource ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resource, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Resource retrieved successfully", resource))
}

// Create creates a resource
// @Summary      Create resource
// @Tags         resources
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ResourceRequest  true  "Resource payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req service.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	resource, err := h.resources.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Resource created successfully", resource))
}

// Update updates a resource
// @Summary      Update resource
// @Tags         resources
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Resource ID"
// @Param        payload  body      service.ResourceRequest  true  "Resource payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	resource, err := h.resources.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Resource updated successfully", resource))
}

// Delete removes a resource
// @Summary      Delete resource
// @Tags         resources
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Resource ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.resources.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Resource deleted successfully", nil))
}

// Stats returns resource availability counts
// @Summary      Resource statistics
// @Tags         resources
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/resources/stats [get]
func (h *ResourceHandler) Stats(c *gin.Context) {
	stats, err := h.resources.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Resource statistics retrieved successfully", stats))
}
