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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CourseRepository) WithTx(tx pgx.Tx) *CourseRepository {
	return &CourseRepository{db: tx}
}

const courseColumns = `id, chapter_id, title, type, content, position, lecture_minutes, duration_minutes, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.ChapterID, &c.Title, &c.Type, &c.Content, &c.Position,
		&c.LectureMinutes, &c.DurationMinutes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new course. The stored duration starts at the lecture
// time; exercises and QCMs are added by the cascade as they appear.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	query := `
		INSERT INTO courses (chapter_id, title, type, content, position, lecture_minutes, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, duration_minutes, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.ChapterID, c.Title, c.Type, c.Content, c.Position, c.LectureMinutes).
		Scan(&c.ID, &c.DurationMinutes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// ListByChapter retrieves the courses of a chapter ordered by position
func (r *CourseRepository) ListByChapter(ctx context.Context, chapterID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE chapter_id = $1 ORDER BY position ASC, id ASC`,
		chapterID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Update updates a course's editable fields
func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET title = $1, type = $2, content = $3, position = $4, lecture_minutes = $5, updated_at = $6 WHERE id = $7`,
		c.Title, c.Type, c.Content, c.Position, c.LectureMinutes, time.Now(), c.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete deletes a course; exercises and QCMs go with it via ON DELETE CASCADE
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// RecomputeDuration refreshes the course duration from its lecture time,
// exercises and QCMs. First link of the duration cascade.
func (r *CourseRepository) RecomputeDuration(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE courses c
		SET duration_minutes = c.lecture_minutes
		    + COALESCE((SELECT SUM(estimated_minutes) FROM exercises WHERE course_id = c.id), 0)
		    + COALESCE((SELECT SUM(time_limit_minutes) FROM qcms WHERE course_id = c.id), 0),
		    updated_at = NOW()
		WHERE c.id = $1
		RETURNING duration_minutes
	`

	var duration int
	if err := r.db.QueryRow(ctx, query, id).Scan(&duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error recomputing course duration: %w", err)
	}
	return duration, nil
}
