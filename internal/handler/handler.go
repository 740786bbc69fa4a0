package handler

import (
	"strconv"

	"backend/internal/model"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Role sets shared across route registrations. Write access follows the
// module owner's role; Admin passes everywhere.
var (
	allRoles = []string{
		model.RoleAdmin, model.RoleManager, model.RoleFinance, model.RoleProcurement,
		model.RoleQuality, model.RoleDesigner, model.RoleViewer,
	}
	managerRoles     = []string{model.RoleAdmin, model.RoleManager}
	financeRoles     = []string{model.RoleAdmin, model.RoleFinance}
	procurementRoles = []string{model.RoleAdmin, model.RoleProcurement}
	qualityRoles     = []string{model.RoleAdmin, model.RoleQuality}
	designerRoles    = []string{model.RoleAdmin, model.RoleDesigner}
	adminOnly        = []string{model.RoleAdmin}
)

// respondError maps a service error onto the response envelope. Internal
// detail is logged, never serialized.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, response.Error(apperr.PublicMessage(err, "Internal server error")))
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(400, response.Error("Invalid id parameter"))
		return 0, false
	}
	return uint(id), true
}
