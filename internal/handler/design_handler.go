package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var drawingListOptions = listquery.Options{
	SortFields: []string{"id", "drawing_id", "stage", "file_name", "status", "submission_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "stage", Column: "d.stage"},
		{Param: "status", Column: "d.status"},
		{Param: "project_id", Column: "d.project_id"},
	},
}

type DesignHandler struct {
	design service.DesignService
}

func NewDesignHandler(design service.DesignService) *DesignHandler {
	return &DesignHandler{design: design}
}

func (h *DesignHandler) RegisterRoutes(router *gin.RouterGroup) {
	drawings := router.Group("/api/drawings")
	{
		drawings.GET("", middleware.RequireRole(allRoles...), h.List)
		drawings.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		drawings.GET("/:id", middleware.RequireRole(allRoles...), h.Get)
		drawings.POST("", middleware.RequireRole(designerRoles...), h.Create)
		drawings.PUT("/:id", middleware.RequireRole(designerRoles...), h.Update)
		drawings.DELETE("/:id", middleware.RequireRole(adminOnly...), h.Delete)
	}
}

// List returns a paginated list of drawings
// @Summary      List drawings
// @Tags         design
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        stage      query  string  false  "Filter by stage"
// @Param        status     query  string  false  "Filter by status"
// @Param        project_id query  int     false  "Filter by project"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/drawings [get]
func (h *DesignHandler) List(c *gin.Context) {
	q := listquery.Parse(c, drawingListOptions)
	rows, total, err := h.design.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Drawings retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// Get returns one drawing by id
// @Summary      Get drawing
// @Tags         design
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Drawing ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/drawings/{id} [get]
func (h *DesignHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	drawing, err := h.design.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Drawing retrieved successfully", drawing))
}

// Create uploads a drawing file and creates its record
// @Summary      Upload drawing
// @Tags         design
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "Drawing file"
// @Param        project_id      formData  int     false  "Project ID"
// @Param        contract_id     formData  int     false  "Contract ID"
// @Param        stage           formData  string  false  "Design stage"
// @Param        file_name       formData  string  false  "Display file name"
// @Param        submission_date formData  string  false  "Submission date (YYYY-MM-DD)"
// @Success      201  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /api/drawings [post]
func (h *DesignHandler) Create(c *gin.Context) {
	var req service.DrawingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Drawing file is required"))
		return
	}
	drawing, err := h.design.Create(c.Request.Context(), req, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Drawing uploaded successfully", drawing))
}

// Update updates drawing metadata
// @Summary      Update drawing
// @Tags         design
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Drawing ID"
// @Param        payload  body      service.DrawingRequest  true  "Drawing payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/drawings/{id} [put]
func (h *DesignHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.DrawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	drawing, err := h.design.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Drawing updated successfully", drawing))
}

// Delete removes a drawing and its stored file
// @Summary      Delete drawing
// @Tags         design
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Drawing ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/drawings/{id} [delete]
func (h *DesignHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error("Invalid id parameter"))
		return
	}
	if err := h.design.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Drawing deleted successfully", nil))
}

// Stats returns drawing counts per status
// @Summary      Design statistics
// @Tags         design
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/drawings/stats [get]
func (h *DesignHandler) Stats(c *gin.Context) {
	stats, err := h.design.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Design statistics retrieved successfully", stats))
}
