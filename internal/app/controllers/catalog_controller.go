package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// CatalogController serves the public training catalog
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListFormations handles browsing the published catalog
// @Summary Browse the catalog
// @Description Lists published formations with optional filtering by category, level and free-text search.
// @Tags catalog
// @Produce json
// @Param category query string false "Filter by category"
// @Param level query string false "Filter by level" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.FormationListResponse} "Published formations"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /formations [get]
func (c *CatalogController) ListFormations(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.FormationFilter{
		Category: ctx.Query("category"),
		Level:    ctx.Query("level"),
		Search:   ctx.Query("search"),
		Page:     page,
		Size:     size,
	}

	response, err := c.catalogService.ListFormations(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// GetFormation handles retrieving a published formation with its content tree
// @Summary Get a formation by slug
// @Description Retrieves a published formation including its modules, chapters, courses, exercises and QCMs.
// @Tags catalog
// @Produce json
// @Param slug path string true "Formation slug"
// @Success 200 {object} dto.APIResponse{data=models.Formation} "Formation detail"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /formations/{slug} [get]
func (c *CatalogController) GetFormation(ctx *gin.Context) {
	formation, err := c.catalogService.GetFormationBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(formation))
}

// GetOpenSessions handles listing the open sessions of a formation
// @Summary List open sessions
// @Description Lists upcoming sessions of a published formation that are open for registration.
// @Tags catalog
// @Produce json
// @Param slug path string true "Formation slug"
// @Success 200 {object} dto.APIResponse{data=[]models.Session} "Open sessions"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /formations/{slug}/sessions [get]
func (c *CatalogController) GetOpenSessions(ctx *gin.Context) {
	sessions, err := c.catalogService.GetOpenSessions(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sessions))
}
