package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
)

// CertificateController handles certificate issuance, revocation, PDF
// rendering and the public verification endpoint.
type CertificateController struct {
	certificateService *services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// IssueCertificate handles issuing a certificate for an attended registration
// @Summary Issue a certificate
// @Description Issues a completion certificate for a registration in ATTENDED status. The certificate number and verification code are generated server side.
// @Tags admin-certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueCertificateRequest true "Registration reference"
// @Success 201 {object} dto.APIResponse{data=models.Certificate} "Certificate issued"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 409 {object} dto.ErrorResponse "Registration not attended or certificate already issued"
// @Router /admin/certificates [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	certificate, err := c.certificateService.Issue(ctx, middleware.UserID(ctx), req.RegistrationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(certificate))
}

// GetCertificate handles retrieving a certificate
// @Summary Get a certificate
// @Tags admin-certificates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Certificate detail"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /admin/certificates/{id} [get]
func (c *CertificateController) GetCertificate(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certificate))
}

// RevokeCertificate handles revoking a certificate
// @Summary Revoke a certificate
// @Description Revokes a certificate. Revoked certificates fail verification and can no longer be downloaded.
// @Tags admin-certificates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Certificate revoked"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 409 {object} dto.ErrorResponse "Certificate already revoked"
// @Router /admin/certificates/{id}/revoke [post]
func (c *CertificateController) RevokeCertificate(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.certificateService.Revoke(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Certificate revoked"}))
}

// DownloadCertificatePDF handles rendering a certificate as PDF
// @Summary Download a certificate PDF
// @Tags admin-certificates
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {file} file "Certificate PDF"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 409 {object} dto.ErrorResponse "Certificate revoked"
// @Router /admin/certificates/{id}/pdf [get]
func (c *CertificateController) DownloadCertificatePDF(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
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

// VerifyCertificate handles the public certificate verification endpoint
// @Summary Verify a certificate
// @Description Checks a certificate verification code. Unknown codes and revoked certificates answer valid=false.
// @Tags certificates
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateVerification} "Verification result"
// @Router /certificates/verify/{code} [get]
func (c *CertificateController) VerifyCertificate(ctx *gin.Context) {
	result, err := c.certificateService.Verify(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
