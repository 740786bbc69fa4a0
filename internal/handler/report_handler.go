package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/dashboard", middleware.RequireRole(allRoles...), h.Dashboard)
		reports.GET("/project/:id", middleware.RequireRole(managerRoles...), h.ProjectReport)
	}
}

// Dashboard returns the cross-module statistics rollup
// @Summary      Dashboard statistics
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Body
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Dashboard statistics retrieved successfully", stats))
}

// ProjectReport generates the full report for one project
// @Summary      Project report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /api/reports/project/{id} [get]
func (h *ReportHandler) ProjectReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.reports.ProjectReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success("Project report generated successfully", report))
}
