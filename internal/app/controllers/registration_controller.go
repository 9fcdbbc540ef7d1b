package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// RegistrationController handles session registrations, both the public
// registration endpoint and the admin management endpoints.
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

// RegisterForSession handles a public registration to an open session
// @Summary Register for a session
// @Description Registers a participant for an open session. Authenticated students get the registration linked to their account. Reaching capacity flips the session to FULL.
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.RegisterForSessionRequest true "Participant details"
// @Success 201 {object} dto.APIResponse{data=models.SessionRegistration} "Registration recorded"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session not open, full, or email already registered"
// @Router /sessions/{id}/register [post]
func (c *RegistrationController) RegisterForSession(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegisterForSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var userID *int64
	if id := middleware.UserID(ctx); id != 0 {
		userID = &id
	}

	registration, err := c.registrationService.Register(ctx, sessionID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(registration))
}

// GetRegistration handles retrieving a registration
// @Summary Get a registration
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse{data=models.SessionRegistration} "Registration detail"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /admin/registrations/{id} [get]
func (c *RegistrationController) GetRegistration(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	registration, err := c.registrationService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration))
}

// ListSessionRegistrations handles listing the registrations of a session
// @Summary List session registrations
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationListResponse} "Registrations"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{id}/registrations [get]
func (c *RegistrationController) ListSessionRegistrations(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	response, err := c.registrationService.ListBySession(ctx, sessionID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// ChangeRegistrationStatus handles moving a registration along its lifecycle
// @Summary Change registration status
// @Description Moves a registration to a new status. Cancelling a registration of a FULL session reopens it.
// @Tags admin-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body dto.RegistrationStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.SessionRegistration} "Registration updated"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /admin/registrations/{id}/status [patch]
func (c *RegistrationController) ChangeRegistrationStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegistrationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	registration, err := c.registrationService.ChangeStatus(ctx, middleware.UserID(ctx), id, models.RegistrationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration))
}
