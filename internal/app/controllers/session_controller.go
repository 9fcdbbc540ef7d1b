package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// SessionController handles admin session management
type SessionController struct {
	sessionService *services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// CreateSession handles scheduling a session
// @Summary Create a session
// @Description Schedules a session of a formation. New sessions start in PLANNED status.
// @Tags admin-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session payload"
// @Success 201 {object} dto.APIResponse{data=models.Session} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or invalid dates"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /admin/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.sessionService.Create(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(session))
}

// GetSession handles retrieving a session
// @Summary Get a session
// @Tags admin-sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session detail"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.sessionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// ListSessions handles listing sessions
// @Summary List sessions
// @Description Lists sessions with optional formation and status filters.
// @Tags admin-sessions
// @Produce json
// @Security BearerAuth
// @Param formationId query int false "Filter by formation ID"
// @Param status query string false "Filter by status" Enums(PLANNED, OPEN, FULL, CLOSED, CANCELLED)
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.SessionListResponse} "Sessions"
// @Router /admin/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var formationID int64
	if v := ctx.Query("formationId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			formationID = parsed
		}
	}

	response, err := c.sessionService.List(ctx, formationID, ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// UpdateSession handles updating a session
// @Summary Update a session
// @Description Updates session dates, location, capacity and price. Capacity cannot drop below the current registration count.
// @Tags admin-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Session payload"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session updated"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Capacity below registration count"
// @Router /admin/sessions/{id} [put]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.sessionService.Update(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// ChangeSessionStatus handles moving a session along its lifecycle
// @Summary Change session status
// @Description Moves a session to a new status. Only documented transitions are accepted.
// @Tags admin-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.SessionStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session updated"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /admin/sessions/{id}/status [patch]
func (c *SessionController) ChangeSessionStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	session, err := c.sessionService.ChangeStatus(ctx, middleware.UserID(ctx), id, models.SessionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// DeleteSession handles deleting a session
// @Summary Delete a session
// @Description Deletes a session. Rejected when registrations exist.
// @Tags admin-sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Session deleted"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session has registrations"
// @Router /admin/sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessionService.Delete(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Session deleted"}))
}
