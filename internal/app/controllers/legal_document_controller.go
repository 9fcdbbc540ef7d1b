package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/middleware"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// LegalDocumentController handles versioned legal documents, both the public
// published views and the admin draft lifecycle.
type LegalDocumentController struct {
	documentService *services.LegalDocumentService
}

// NewLegalDocumentController creates a new LegalDocumentController
func NewLegalDocumentController(documentService *services.LegalDocumentService) *LegalDocumentController {
	return &LegalDocumentController{documentService: documentService}
}

// ListPublishedDocuments handles the public list of published documents
// @Summary List published legal documents
// @Tags legal-documents
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.LegalDocument} "Published documents"
// @Router /legal-documents [get]
func (c *LegalDocumentController) ListPublishedDocuments(ctx *gin.Context) {
	documents, _, err := c.documentService.List(ctx, "", string(models.DocPublished), 1, 100)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(documents))
}

// GetPublishedDocument handles the public published document of a type
// @Summary Get the published document of a type
// @Tags legal-documents
// @Produce json
// @Param type path string true "Document type" Enums(INTERNAL_REGULATION, STUDY_REGULATION, TRAINING_TERMS, ACCESSIBILITY_POLICY, ACCESSIBILITY_PROCEDURES)
// @Success 200 {object} dto.APIResponse{data=models.LegalDocument} "Published document"
// @Failure 404 {object} dto.ErrorResponse "No published document of this type"
// @Router /legal-documents/{type} [get]
func (c *LegalDocumentController) GetPublishedDocument(ctx *gin.Context) {
	document, err := c.documentService.GetPublished(ctx, ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// DownloadPublishedPDF handles rendering the published document as PDF
// @Summary Download the published document PDF
// @Tags legal-documents
// @Produce application/pdf
// @Param type path string true "Document type" Enums(INTERNAL_REGULATION, STUDY_REGULATION, TRAINING_TERMS, ACCESSIBILITY_POLICY, ACCESSIBILITY_PROCEDURES)
// @Success 200 {file} file "Document PDF"
// @Failure 404 {object} dto.ErrorResponse "No published document of this type"
// @Router /legal-documents/{type}/pdf [get]
func (c *LegalDocumentController) DownloadPublishedPDF(ctx *gin.Context) {
	pdf, document, err := c.documentService.RenderPublishedPDF(ctx, ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("%s-v%d.pdf", document.Type, document.Version)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// CreateDocument handles creating a draft document version
// @Summary Create a legal document draft
// @Description Creates a new draft of a document type. The version number is the next free version of the type.
// @Tags admin-legal-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLegalDocumentRequest true "Document payload"
// @Success 201 {object} dto.APIResponse{data=models.LegalDocument} "Draft created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/legal-documents [post]
func (c *LegalDocumentController) CreateDocument(ctx *gin.Context) {
	var req dto.CreateLegalDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	document, err := c.documentService.Create(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(document))
}

// GetDocument handles retrieving any document version
// @Summary Get a legal document
// @Tags admin-legal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.LegalDocument} "Document detail"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /admin/legal-documents/{id} [get]
func (c *LegalDocumentController) GetDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	document, err := c.documentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// ListDocuments handles listing document versions
// @Summary List legal documents
// @Tags admin-legal-documents
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by type" Enums(INTERNAL_REGULATION, STUDY_REGULATION, TRAINING_TERMS, ACCESSIBILITY_POLICY, ACCESSIBILITY_PROCEDURES)
// @Param status query string false "Filter by status" Enums(DRAFT, PUBLISHED, ARCHIVED)
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=[]models.LegalDocument} "Documents"
// @Router /admin/legal-documents [get]
func (c *LegalDocumentController) ListDocuments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	documents, pagination, err := c.documentService.List(ctx, ctx.Query("type"), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"documents":  documents,
		"pagination": pagination,
	}))
}

// UpdateDocument handles updating a draft document
// @Summary Update a legal document draft
// @Description Updates the title and content of a document. Only drafts can be edited.
// @Tags admin-legal-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.UpdateLegalDocumentRequest true "Document payload"
// @Success 200 {object} dto.APIResponse{data=models.LegalDocument} "Document updated"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Document is not a draft"
// @Router /admin/legal-documents/{id} [put]
func (c *LegalDocumentController) UpdateDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateLegalDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	document, err := c.documentService.Update(ctx, middleware.UserID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// PublishDocument handles publishing a draft
// @Summary Publish a legal document
// @Description Publishes a draft. The previously published version of the same type is archived in the same transaction.
// @Tags admin-legal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.LegalDocument} "Document published"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Document is not a draft"
// @Router /admin/legal-documents/{id}/publish [post]
func (c *LegalDocumentController) PublishDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	document, err := c.documentService.Publish(ctx, middleware.UserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// ArchiveDocument handles archiving a published document
// @Summary Archive a legal document
// @Tags admin-legal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.LegalDocument} "Document archived"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Document is not published"
// @Router /admin/legal-documents/{id}/archive [post]
func (c *LegalDocumentController) ArchiveDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	document, err := c.documentService.Archive(ctx, middleware.UserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// DeleteDocument handles deleting a draft
// @Summary Delete a legal document draft
// @Tags admin-legal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Draft deleted"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Document is not a draft"
// @Router /admin/legal-documents/{id} [delete]
func (c *LegalDocumentController) DeleteDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.documentService.Delete(ctx, middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Draft deleted"}))
}
