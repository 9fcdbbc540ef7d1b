package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
)

// ExportController serves the Qualiopi CSV exports
type ExportController struct {
	exportService *services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// ExportSessionRegistrations handles the registration sheet export
// @Summary Export session registrations as CSV
// @Description Exports every registration of a session, including cancelled ones, as a CSV attendance sheet.
// @Tags admin-exports
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {file} file "CSV export"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{id}/registrations/export [get]
func (c *ExportController) ExportSessionRegistrations(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data, filename, err := c.exportService.ExportSessionRegistrations(ctx, middleware.UserID(ctx), sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}

// ExportFormations handles the catalog export
// @Summary Export the catalog as CSV
// @Description Exports every formation of the catalog, published or not, as CSV.
// @Tags admin-exports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV export"
// @Router /admin/formations/export [get]
func (c *ExportController) ExportFormations(ctx *gin.Context) {
	data, filename, err := c.exportService.ExportFormations(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}
