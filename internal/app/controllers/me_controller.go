package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
)

// MeController serves the authenticated student's own data
type MeController struct {
	authService         *services.AuthService
	registrationService *services.RegistrationService
	certificateService  *services.CertificateService
}

// NewMeController creates a new MeController
func NewMeController(authService *services.AuthService, registrationService *services.RegistrationService, certificateService *services.CertificateService) *MeController {
	return &MeController{
		authService:         authService,
		registrationService: registrationService,
		certificateService:  certificateService,
	}
}

// GetProfile handles retrieving the caller's profile
// @Summary Get my profile
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /me [get]
func (c *MeController) GetProfile(ctx *gin.Context) {
	user, err := c.authService.GetProfile(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// ListMyRegistrations handles listing the caller's session registrations
// @Summary List my registrations
// @Description Lists every registration recorded for the caller's email address, including ones made before the account existed.
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SessionRegistration} "Registrations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /me/registrations [get]
func (c *MeController) ListMyRegistrations(ctx *gin.Context) {
	registrations, err := c.registrationService.ListByEmail(ctx, middleware.UserEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registrations))
}

// ListMyCertificates handles listing the caller's certificates
// @Summary List my certificates
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Certificate} "Certificates"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /me/certificates [get]
func (c *MeController) ListMyCertificates(ctx *gin.Context) {
	certificates, err := c.certificateService.ListByEmail(ctx, middleware.UserEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certificates))
}

// DownloadMyCertificatePDF handles downloading one of the caller's certificates
// @Summary Download my certificate PDF
// @Description Renders one of the caller's certificates as PDF. Certificates belonging to other participants answer 404.
// @Tags me
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {file} file "Certificate PDF"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 409 {object} dto.ErrorResponse "Certificate revoked"
// @Router /me/certificates/{id}/pdf [get]
func (c *MeController) DownloadMyCertificatePDF(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	certificate, err := c.certificateService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Ownership is by registration email, not user id, so certificates
	// earned before the account was created stay reachable.
	if certificate.Registration == nil || certificate.Registration.Email != middleware.UserEmail(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrCertificateNotFound)
		return
	}

	pdf, certificate, err := c.certificateService.RenderPDF(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certificate.Number+".pdf"))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
