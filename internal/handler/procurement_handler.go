package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/listquery"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

var materialListOptions = listquery.Options{
	SortFields: []string{"id", "material_id", "name", "supplier", "qty", "unit_cost", "status", "planned_date", "actual_date", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "status", Column: "m.status"},
		{Param: "project_id", Column: "m.project_id"},
		{Param: "supplier", Column: "m.supplier"},
	},
}

var grnListOptions = listquery.Options{
	SortFields: []string{"id", "grn_number", "receipt_date", "received_qty", "created_at"},
	Filters: []listquery.FilterKey{
		{Param: "material_id", Column: "g.material_id"},
	},
}

type ProcurementHandler struct {
	procurement service.ProcurementService
}

func NewProcurementHandler(procurement service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurement: procurement}
}

func (h *ProcurementHandler) RegisterRoutes(router *gin.RouterGroup) {
	materials := router.Group("/api/materials")
	{
		materials.GET("", middleware.RequireRole(allRoles...), h.ListMaterials)
		materials.GET("/stats", middleware.RequireRole(allRoles...), h.Stats)
		materials.GET("/:id", middleware.RequireRole(allRoles...), h.GetMaterial)
		materials.POST("", middleware.RequireRole(procurementRoles...), h.CreateMaterial)
		materials.PUT("/:id", middleware.RequireRole(procurementRoles...), h.UpdateMaterial)
		materials.POST("/:id/generate-po", middleware.RequireRole(procurementRoles...), h.GeneratePO)
		materials.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeleteMaterial)
	}

	grns := router.Group("/api/grns")
	{
		grns.GET("", middleware.RequireRole(allRoles...), h.ListGRNs)
		grns.POST("", middleware.RequireRole(procurementRoles...), h.CreateGRN)
	}
}

// ListMaterials returns a paginated list of materials
// @Summary      List materials
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Items per page"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        status     query  string  false  "Filter by status"
// @Param        project_id query  int     false  "Filter by project"
// @Param        supplier   query  string  false  "Filter by supplier"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/materials [get]
func (h *ProcurementHandler) ListMaterials(c *gin.Context) {
	q := listquery.Parse(c, materialListOptions)
	rows, total, err := h.procurement.ListMaterials(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("Materials retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// GetMaterial returns one material by id
// @Summary      Get material
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Material ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/materials/{id} [get]
func (h *ProcurementHandler) GetMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	material, err := h.procurement.GetMaterial(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Material retrieved successfully", material))
}

// CreateMaterial creates a material
// @Summary      Create material
// @Tags         procurement
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MaterialRequest  true  "Material payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Router       /api/materials [post]
func (h *ProcurementHandler) CreateMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	material, err := h.procurement.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("Material created successfully", material))
}

// UpdateMaterial updates a material
// @Summary      Update material
// @Tags         procurement
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Material ID"
// @Param        payload  body      service.MaterialRequest  true  "Material payload"
// @Success      200      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/materials/{id} [put]
func (h *ProcurementHandler) UpdateMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	material, err := h.procurement.UpdateMaterial(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Material updated successfully", material))
}

// GeneratePO assigns the next purchase-order number to a material
// @Summary      Generate PO number
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Material ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/materials/{id}/generate-po [post]
func (h *ProcurementHandler) GeneratePO(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	material, err := h.procurement.GeneratePONumber(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("PO number generated successfully", material))
}

// DeleteMaterial removes a material
// @Summary      Delete material
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Material ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/materials/{id} [delete]
func (h *ProcurementHandler) DeleteMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.procurement.DeleteMaterial(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Material deleted successfully", nil))
}

// ListGRNs returns a paginated list of goods received notes
// @Summary      List GRNs
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Items per page"
// @Param        material_id query  int     false  "Filter by material"
// @Param        search      query  string  false  "Free-text search"
// @Success      200  {object}  response.Body
// @Router       /api/grns [get]
func (h *ProcurementHandler) ListGRNs(c *gin.Context) {
	q := listquery.Parse(c, grnListOptions)
	rows, total, err := h.procurement.ListGRNs(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated("GRNs retrieved successfully", rows, response.NewPagination(q.Page, q.Limit, total)))
}

// CreateGRN records a goods received note and marks the material Delivered
// @Summary      Create GRN
// @Tags         procurement
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.GRNRequest  true  "GRN payload"
// @Success      201      {object}  response.Body
// @Failure      400      {object}  response.Body
// @Failure      404      {object}  response.Body
// @Router       /api/grns [post]
func (h *ProcurementHandler) CreateGRN(c *gin.Context) {
	var req service.GRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("Invalid request payload", err.Error()))
		return
	}
	grn, err := h.procurement.CreateGRN(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success("GRN created successfully", grn))
}

// Stats returns procurement statistics
// @Summary      Procurement statistics
// @Tags         procurement
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/materials/stats [get]
func (h *ProcurementHandler) Stats(c *gin.Context) {
	stats, err := h.procurement.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Procurement statistics retrieved successfully", stats))
}
