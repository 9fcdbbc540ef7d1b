package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
)

// LegalDocumentRepository handles database operations for versioned legal
// documents
type LegalDocumentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewLegalDocumentRepository creates a new legal document repository
func NewLegalDocumentRepository(db *pgxpool.Pool) *LegalDocumentRepository {
	return &LegalDocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *LegalDocumentRepository) WithTx(tx pgx.Tx) *LegalDocumentRepository {
	return &LegalDocumentRepository{db: tx, sb: r.sb}
}

const legalDocumentColumns = `id, type, title, content, version, status, published_at, created_at, updated_at`

func scanLegalDocument(row pgx.Row) (*models.LegalDocument, error) {
	var doc models.LegalDocument
	err := row.Scan(&doc.ID, &doc.Type, &doc.Title, &doc.Content, &doc.Version,
		&doc.Status, &doc.PublishedAt, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create creates a new draft with the next version number for its type
func (r *LegalDocumentRepository) Create(ctx context.Context, doc *models.LegalDocument) error {
	query := `
		INSERT INTO legal_documents (type, title, content, version, status)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM legal_documents WHERE type = $1),
			'DRAFT')
		RETURNING id, version, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, doc.Type, doc.Title, doc.Content).
		Scan(&doc.ID, &doc.Version, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating legal document: %w", err)
	}
	return nil
}

// GetByID retrieves a legal document by id
func (r *LegalDocumentRepository) GetByID(ctx context.Context, id int64) (*models.LegalDocument, error) {
	doc, err := scanLegalDocument(r.db.QueryRow(ctx,
		`SELECT `+legalDocumentColumns+` FROM legal_documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLegalDocumentNotFound
		}
		return nil, fmt.Errorf("error retrieving legal document: %w", err)
	}
	return doc, nil
}

// GetPublishedByType retrieves the currently published document of a type
func (r *LegalDocumentRepository) GetPublishedByType(ctx context.Context, docType models.LegalDocumentType) (*models.LegalDocument, error) {
	doc, err := scanLegalDocument(r.db.QueryRow(ctx,
		`SELECT `+legalDocumentColumns+` FROM legal_documents WHERE type = $1 AND status = 'PUBLISHED'`, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoPublishedDocument
		}
		return nil, fmt.Errorf("error retrieving published document: %w", err)
	}
	return doc, nil
}

// List retrieves legal documents filtered by type and status
func (r *LegalDocumentRepository) List(ctx context.Context, docType, status string, offset uint64, limit int) ([]*models.LegalDocument, int64, error) {
	applyFilter := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if docType != "" {
			q = q.Where(squirrel.Eq{"type": docType})
		}
		if status != "" {
			q = q.Where(squirrel.Eq{"status": status})
		}
		return q
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("legal_documents")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build document count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting legal documents: %w", err)
	}

	listSQL, listArgs, err := applyFilter(r.sb.Select(legalDocumentColumns).From("legal_documents")).
		OrderBy("type ASC", "version DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build document list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing legal documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.LegalDocument
	for rows.Next() {
		doc, err := scanLegalDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, rows.Err()
}

// Update updates the title and content of a draft document
func (r *LegalDocumentRepository) Update(ctx context.Context, doc *models.LegalDocument) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE legal_documents SET title = $1, content = $2, updated_at = $3 WHERE id = $4 AND status = 'DRAFT'`,
		doc.Title, doc.Content, time.Now(), doc.ID)
	if err != nil {
		return fmt.Errorf("error updating legal document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotDraft
	}
	return nil
}

// ArchivePublished archives the currently published document of a type.
// Returning false means no document of the type was published.
func (r *LegalDocumentRepository) ArchivePublished(ctx context.Context, docType models.LegalDocumentType) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE legal_documents SET status = 'ARCHIVED', updated_at = $1 WHERE type = $2 AND status = 'PUBLISHED'`,
		time.Now(), docType)
	if err != nil {
		return false, fmt.Errorf("error archiving published document: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Publish moves a draft to PUBLISHED and stamps its publication time
func (r *LegalDocumentRepository) Publish(ctx context.Context, id int64, publishedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE legal_documents SET status = 'PUBLISHED', published_at = $1, updated_at = $2 WHERE id = $3 AND status = 'DRAFT'`,
		publishedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error publishing legal document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotDraft
	}
	return nil
}

// Archive moves a published document to ARCHIVED
func (r *LegalDocumentRepository) Archive(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE legal_documents SET status = 'ARCHIVED', updated_at = $1 WHERE id = $2 AND status = 'PUBLISHED'`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error archiving legal document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoPublishedDocument
	}
	return nil
}

// Delete removes a draft document
func (r *LegalDocumentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM legal_documents WHERE id = $1 AND status = 'DRAFT'`, id)
	if err != nil {
		return fmt.Errorf("error deleting legal document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotDraft
	}
	return nil
}
