package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// NeedsAnalysisController handles the Qualiopi needs-analysis workflow:
// admin-managed requests and the public tokenized form.
type NeedsAnalysisController struct {
	analysisService *services.NeedsAnalysisService
}

// NewNeedsAnalysisController creates a new NeedsAnalysisController
func NewNeedsAnalysisController(analysisService *services.NeedsAnalysisService) *NeedsAnalysisController {
	return &NeedsAnalysisController{analysisService: analysisService}
}

// CreateRequest handles creating a needs-analysis request
// @Summary Create a needs-analysis request
// @Description Creates a PENDING needs-analysis request for a prospect. Use the send endpoint to email the tokenized form link.
// @Tags admin-needs-analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnalysisRequest true "Request payload"
// @Success 201 {object} dto.APIResponse{data=models.NeedsAnalysisRequest} "Request created"
// @Failure 404 {object} dto.ErrorResponse "Formation not found"
// @Router /admin/needs-analysis [post]
func (c *NeedsAnalysisController) CreateRequest(ctx *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	request, err := c.analysisService.Create(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request))
}

// SendRequest handles emailing the tokenized form link
// @Summary Send a needs-analysis request
// @Description Emails the tokenized form link to the recipient and stamps the expiry window. Only PENDING requests can be sent.
// @Tags admin-needs-analysis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.NeedsAnalysisRequest} "Request sent"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request not in PENDING status"
// @Router /admin/needs-analysis/{id}/send [post]
func (c *NeedsAnalysisController) SendRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	request, err := c.analysisService.Send(ctx, middleware.UserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request))
}

// ListRequests handles listing needs-analysis requests
// @Summary List needs-analysis requests
// @Tags admin-needs-analysis
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type" Enums(COMPANY, INDIVIDUAL)
// @Param status query string false "Filter by status" Enums(PENDING, SENT, COMPLETED, EXPIRED, CANCELLED)
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AnalysisListResponse} "Requests"
// @Router /admin/needs-analysis [get]
func (c *NeedsAnalysisController) ListRequests(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	response, err := c.analysisService.List(ctx, ctx.Query("type"), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// GetRequest handles retrieving a request with its submitted form
// @Summary Get a needs-analysis request
// @Description Retrieves a request. For COMPLETED requests the submitted company or individual form is included.
// @Tags admin-needs-analysis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.AnalysisDetailResponse} "Request detail"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /admin/needs-analysis/{id} [get]
func (c *NeedsAnalysisController) GetRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail, err := c.analysisService.GetDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// CancelRequest handles cancelling a request
// @Summary Cancel a needs-analysis request
// @Description Cancels a request so its token stops working. Completed requests cannot be cancelled.
// @Tags admin-needs-analysis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request cancelled"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already completed"
// @Router /admin/needs-analysis/{id}/cancel [post]
func (c *NeedsAnalysisController) CancelRequest(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.analysisService.Cancel(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Request cancelled"}))
}

// GetForm handles the public tokenized form metadata endpoint
// @Summary Get form information
// @Description Returns the recipient and expiry details behind a form token. Expired tokens answer 410.
// @Tags needs-analysis
// @Produce json
// @Param token path string true "Form token"
// @Success 200 {object} dto.APIResponse{data=dto.AnalysisFormInfo} "Form information"
// @Failure 404 {object} dto.ErrorResponse "Token unknown or form not available"
// @Failure 409 {object} dto.ErrorResponse "Form already submitted"
// @Failure 410 {object} dto.ErrorResponse "Link expired"
// @Router /needs-analysis/form/{token} [get]
func (c *NeedsAnalysisController) GetForm(ctx *gin.Context) {
	info, err := c.analysisService.GetFormInfo(ctx, ctx.Param("token"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(info))
}

// SubmitForm handles the public tokenized form submission endpoint
// @Summary Submit a needs analysis
// @Description Submits the company or individual form behind a token. Each token accepts exactly one submission before its expiry.
// @Tags needs-analysis
// @Accept json
// @Produce json
// @Param token path string true "Form token"
// @Param request body dto.SubmitAnalysisRequest true "Form payload"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Analysis recorded"
// @Failure 400 {object} dto.ErrorResponse "Payload does not match the request type"
// @Failure 404 {object} dto.ErrorResponse "Token unknown or form not available"
// @Failure 409 {object} dto.ErrorResponse "Form already submitted"
// @Failure 410 {object} dto.ErrorResponse "Link expired"
// @Router /needs-analysis/form/{token} [post]
func (c *NeedsAnalysisController) SubmitForm(ctx *gin.Context) {
	var req dto.SubmitAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.analysisService.Submit(ctx, ctx.Param("token"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Analysis recorded"}))
}
