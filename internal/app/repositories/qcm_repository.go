package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
)

// QCMRepository handles database operations for course questionnaires
type QCMRepository struct {
	db Querier
}

// NewQCMRepository creates a new QCM repository
func NewQCMRepository(db *pgxpool.Pool) *QCMRepository {
	return &QCMRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *QCMRepository) WithTx(tx pgx.Tx) *QCMRepository {
	return &QCMRepository{db: tx}
}

const qcmColumns = `id, course_id, title, question_count, time_limit_minutes, pass_score, created_at, updated_at`

func scanQCM(row pgx.Row) (*models.QCM, error) {
	var q models.QCM
	err := row.Scan(&q.ID, &q.CourseID, &q.Title, &q.QuestionCount,
		&q.TimeLimitMinutes, &q.PassScore, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create creates a new QCM
func (r *QCMRepository) Create(ctx context.Context, q *models.QCM) error {
	query := `
		INSERT INTO qcms (course_id, title, question_count, time_limit_minutes, pass_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		q.CourseID, q.Title, q.QuestionCount, q.TimeLimitMinutes, q.PassScore).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating qcm: %w", err)
	}
	return nil
}

// GetByID retrieves a QCM by ID
func (r *QCMRepository) GetByID(ctx context.Context, id int64) (*models.QCM, error) {
	q, err := scanQCM(r.db.QueryRow(ctx,
		`SELECT `+qcmColumns+` FROM qcms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQCMNotFound
		}
		return nil, fmt.Errorf("error retrieving qcm: %w", err)
	}
	return q, nil
}

// ListByCourse retrieves the QCMs of a course
func (r *QCMRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.QCM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+qcmColumns+` FROM qcms WHERE course_id = $1 ORDER BY id ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing qcms: %w", err)
	}
	defer rows.Close()

	var qcms []*models.QCM
	for rows.Next() {
		q, err := scanQCM(rows)
		if err != nil {
			return nil, err
		}
		qcms = append(qcms, q)
	}
	return qcms, rows.Err()
}

// Update updates a QCM's editable fields
func (r *QCMRepository) Update(ctx context.Context, q *models.QCM) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE qcms SET title = $1, question_count = $2, time_limit_minutes = $3, pass_score = $4, updated_at = $5 WHERE id = $6`,
		q.Title, q.QuestionCount, q.TimeLimitMinutes, q.PassScore, time.Now(), q.ID)
	if err != nil {
		return fmt.Errorf("error updating qcm: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQCMNotFound
	}
	return nil
}

// Delete deletes a QCM
func (r *QCMRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM qcms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting qcm: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQCMNotFound
	}
	return nil
}
