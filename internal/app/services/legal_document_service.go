package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/db"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
	"github.com/eprofos/eprofos-api/internal/pkg/pdfgen"
)

const entityLegalDocument = "LEGAL_DOCUMENT"

// LegalDocumentService manages the versioned Qualiopi legal documents. At
// most one version per type is PUBLISHED at a time; publishing a draft
// archives its predecessor in the same transaction.
type LegalDocumentService struct {
	pool      *pgxpool.Pool
	docs      *repositories.LegalDocumentRepository
	auditRepo *repositories.AuditLogRepository
	audit     *AuditService
	logger    zerolog.Logger
}

// NewLegalDocumentService creates a new LegalDocumentService
func NewLegalDocumentService(
	pool *pgxpool.Pool,
	docs *repositories.LegalDocumentRepository,
	auditRepo *repositories.AuditLogRepository,
	audit *AuditService,
	logger zerolog.Logger,
) *LegalDocumentService {
	return &LegalDocumentService{
		pool:      pool,
		docs:      docs,
		auditRepo: auditRepo,
		audit:     audit,
		logger:    logger,
	}
}

// Create creates a new draft holding the next version number of its type
func (s *LegalDocumentService) Create(ctx context.Context, actorID int64, req *dto.CreateLegalDocumentRequest) (*models.LegalDocument, error) {
	document := &models.LegalDocument{
		Type:    models.LegalDocumentType(req.Type),
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.docs.Create(ctx, document); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionCreate, entityLegalDocument, document.ID,
		fmt.Sprintf("%s v%d", document.Type, document.Version))
	return document, nil
}

// GetByID retrieves a legal document in any status
func (s *LegalDocumentService) GetByID(ctx context.Context, id int64) (*models.LegalDocument, error) {
	return s.docs.GetByID(ctx, id)
}

// GetPublished retrieves the currently published document of a type, for the
// public endpoint.
func (s *LegalDocumentService) GetPublished(ctx context.Context, docType string) (*models.LegalDocument, error) {
	t := models.LegalDocumentType(docType)
	if !models.ValidLegalDocumentType(t) {
		return nil, apperrors.NewBadRequestError("unknown legal document type")
	}
	return s.docs.GetPublishedByType(ctx, t)
}

// List retrieves a page of legal documents for the admin view
func (s *LegalDocumentService) List(ctx context.Context, docType, status string, page, size int) ([]*models.LegalDocument, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	documents, total, err := s.docs.List(ctx, docType, status, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return documents, helpers.NewPaginationInfo(total, page, size), nil
}

// Update updates a draft's title and content. Published and archived
// versions are immutable.
func (s *LegalDocumentService) Update(ctx context.Context, actorID, id int64, req *dto.UpdateLegalDocumentRequest) (*models.LegalDocument, error) {
	document, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	document.Title = req.Title
	document.Content = req.Content

	if err := s.docs.Update(ctx, document); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionUpdate, entityLegalDocument, id,
		fmt.Sprintf("%s v%d", document.Type, document.Version))
	return document, nil
}

// Publish publishes a draft and archives the previously published version of
// the same type, atomically.
func (s *LegalDocumentService) Publish(ctx context.Context, actorID, id int64) (*models.LegalDocument, error) {
	document, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if document.Status != models.DocDraft {
		return nil, apperrors.ErrDocumentNotDraft
	}

	publishedAt := time.Now()
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		docs := s.docs.WithTx(tx)

		archived, err := docs.ArchivePublished(ctx, document.Type)
		if err != nil {
			return err
		}
		if archived {
			s.logger.Info().Str("type", string(document.Type)).Msg("Archived previously published document")
		}

		if err := docs.Publish(ctx, id, publishedAt); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionPublish,
			entityLegalDocument, id, fmt.Sprintf("%s v%d", document.Type, document.Version))
	})
	if err != nil {
		return nil, err
	}

	document.Status = models.DocPublished
	document.PublishedAt = &publishedAt
	return document, nil
}

// Archive archives a published document, leaving its type without a public
// version until a new draft is published.
func (s *LegalDocumentService) Archive(ctx context.Context, actorID, id int64) (*models.LegalDocument, error) {
	document, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.docs.Archive(ctx, id); err != nil {
		return nil, err
	}
	document.Status = models.DocArchived

	s.audit.Record(ctx, actorID, models.AuditActionArchive, entityLegalDocument, id,
		fmt.Sprintf("%s v%d", document.Type, document.Version))
	return document, nil
}

// Delete removes a draft
func (s *LegalDocumentService) Delete(ctx context.Context, actorID, id int64) error {
	document, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, models.AuditActionDelete, entityLegalDocument, id,
		fmt.Sprintf("%s v%d", document.Type, document.Version))
	return nil
}

// RenderPublishedPDF renders the published document of a type as a PDF
func (s *LegalDocumentService) RenderPublishedPDF(ctx context.Context, docType string) ([]byte, *models.LegalDocument, error) {
	document, err := s.GetPublished(ctx, docType)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := pdfgen.RenderLegalDocument(pdfgen.LegalDocumentData{
		Title:       document.Title,
		Content:     document.Content,
		Version:     document.Version,
		PublishedAt: *document.PublishedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return pdf, document, nil
}
