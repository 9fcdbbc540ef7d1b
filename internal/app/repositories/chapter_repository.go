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

// ChapterRepository handles database operations for module chapters
type ChapterRepository struct {
	db Querier
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ChapterRepository) WithTx(tx pgx.Tx) *ChapterRepository {
	return &ChapterRepository{db: tx}
}

const chapterColumns = `id, module_id, title, description, position, duration_minutes, created_at, updated_at`

func scanChapter(row pgx.Row) (*models.Chapter, error) {
	var c models.Chapter
	err := row.Scan(&c.ID, &c.ModuleID, &c.Title, &c.Description, &c.Position,
		&c.DurationMinutes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new chapter
func (r *ChapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	query := `
		INSERT INTO chapters (module_id, title, description, position, duration_minutes)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, duration_minutes, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, c.ModuleID, c.Title, c.Description, c.Position).
		Scan(&c.ID, &c.DurationMinutes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating chapter: %w", err)
	}
	return nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	c, err := scanChapter(r.db.QueryRow(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error retrieving chapter: %w", err)
	}
	return c, nil
}

// ListByModule retrieves the chapters of a module ordered by position
func (r *ChapterRepository) ListByModule(ctx context.Context, moduleID int64) ([]*models.Chapter, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE module_id = $1 ORDER BY position ASC, id ASC`,
		moduleID)
	if err != nil {
		return nil, fmt.Errorf("error listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// Update updates a chapter's editable fields
func (r *ChapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE chapters SET title = $1, description = $2, position = $3, updated_at = $4 WHERE id = $5`,
		c.Title, c.Description, c.Position, time.Now(), c.ID)
	if err != nil {
		return fmt.Errorf("error updating chapter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}
	return nil
}

// Delete deletes a chapter; courses and below go with it via ON DELETE CASCADE
func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting chapter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}
	return nil
}

// RecomputeDuration refreshes the chapter duration from its courses
func (r *ChapterRepository) RecomputeDuration(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE chapters ch
		SET duration_minutes = COALESCE((SELECT SUM(duration_minutes) FROM courses WHERE chapter_id = ch.id), 0),
		    updated_at = NOW()
		WHERE ch.id = $1
		RETURNING duration_minutes
	`

	var duration int
	if err := r.db.QueryRow(ctx, query, id).Scan(&duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrChapterNotFound
		}
		return 0, fmt.Errorf("error recomputing chapter duration: %w", err)
	}
	return duration, nil
}
