package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// AuditController serves the compliance audit trail
type AuditController struct {
	auditService *services.AuditService
}

// NewAuditController creates a new AuditController
func NewAuditController(auditService *services.AuditService) *AuditController {
	return &AuditController{auditService: auditService}
}

// ListAuditLogs handles browsing the audit trail
// @Summary List audit logs
// @Description Lists admin actions recorded for Qualiopi traceability, newest first.
// @Tags admin-audit
// @Produce json
// @Security BearerAuth
// @Param entityType query string false "Filter by entity type (FORMATION, SESSION, CERTIFICATE, ...)"
// @Param entityId query int false "Filter by entity ID"
// @Param actorId query int false "Filter by acting user ID"
// @Param action query string false "Filter by action (CREATE, UPDATE, DELETE, ...)"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AuditLogListResponse} "Audit logs"
// @Router /admin/audit-logs [get]
func (c *AuditController) ListAuditLogs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.AuditLogFilter{
		EntityType: ctx.Query("entityType"),
		Action:     ctx.Query("action"),
		Page:       page,
		Size:       size,
	}
	if v := ctx.Query("entityId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EntityID = id
		}
	}
	if v := ctx.Query("actorId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ActorID = id
		}
	}

	response, err := c.auditService.List(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}
