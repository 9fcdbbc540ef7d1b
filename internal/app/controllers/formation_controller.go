package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// FormationController handles admin formation management
type FormationController struct {
	formationService *services.FormationService
}

// NewFormationController creates a new FormationController
func NewFormationController(formationService *services.FormationService) *FormationController {
	return &FormationController{formationService: formationService}
}

// CreateFormation handles creating a formation
// @Summary Create a formation
// @Description Creates an unpublished formation. The slug is derived from the title when omitted.
// @Tags admin-formations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFormationRequest true "Formation payload"
// @Success 201 {object} dto.APIResponse{data=models.Formation} "Formation created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Router /admin/formations [post]
func (c *FormationController) CreateFormation(ctx *gin.Context) {
	var req dto.CreateFormationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	formation, err := c.formationService.Create(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(formation))
}

// GetFormation handles retrieving a formation by ID
// @Summary Get a formation
// @Description Retrieves a formation with its full content tree, published or not.
// @Tags admin-formations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=models.Formation} "Formation detail"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /admin/formations/{id} [get]
func (c *FormationController) GetFormation(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	formation, err := c.formationService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(formation))
}

// ListFormations handles listing formations including drafts
// @Summary List formations
// @Description Lists all formations, published or not, with the same filters as the public catalog.
// @Tags admin-formations
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param level query string false "Filter by level" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.FormationListResponse} "Formations"
// @Router /admin/formations [get]
func (c *FormationController) ListFormations(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.FormationFilter{
		Category: ctx.Query("category"),
		Level:    ctx.Query("level"),
		Search:   ctx.Query("search"),
		Page:     page,
		Size:     size,
	}

	response, err := c.formationService.List(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// UpdateFormation handles updating a formation
// @Summary Update a formation
// @Description Updates a formation. Setting isPublished flips the catalog visibility.
// @Tags admin-formations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Param request body dto.UpdateFormationRequest true "Formation payload"
// @Success 200 {object} dto.APIResponse{data=models.Formation} "Formation updated"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Router /admin/formations/{id} [put]
func (c *FormationController) UpdateFormation(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateFormationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	formation, err := c.formationService.Update(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(formation))
}

// DeleteFormation handles deleting a formation
// @Summary Delete a formation
// @Description Deletes a formation and its content tree. Rejected when sessions exist for the formation.
// @Tags admin-formations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Formation deleted"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Failure 409 {object} dto.ErrorResponse "Formation has sessions"
// @Router /admin/formations/{id} [delete]
func (c *FormationController) DeleteFormation(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.formationService.Delete(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Formation deleted"}))
}
