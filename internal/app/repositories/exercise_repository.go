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

// ExerciseRepository handles database operations for course exercises
type ExerciseRepository struct {
	db Querier
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ExerciseRepository) WithTx(tx pgx.Tx) *ExerciseRepository {
	return &ExerciseRepository{db: tx}
}

const exerciseColumns = `id, course_id, title, instructions, estimated_minutes, max_points, created_at, updated_at`

func scanExercise(row pgx.Row) (*models.Exercise, error) {
	var e models.Exercise
	err := row.Scan(&e.ID, &e.CourseID, &e.Title, &e.Instructions,
		&e.EstimatedMinutes, &e.MaxPoints, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create creates a new exercise
func (r *ExerciseRepository) Create(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (course_id, title, instructions, estimated_minutes, max_points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		e.CourseID, e.Title, e.Instructions, e.EstimatedMinutes, e.MaxPoints).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating exercise: %w", err)
	}
	return nil
}

// GetByID retrieves an exercise by ID
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	e, err := scanExercise(r.db.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("error retrieving exercise: %w", err)
	}
	return e, nil
}

// ListByCourse retrieves the exercises of a course
func (r *ExerciseRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Exercise, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE course_id = $1 ORDER BY id ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// Update updates an exercise's editable fields
func (r *ExerciseRepository) Update(ctx context.Context, e *models.Exercise) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE exercises SET title = $1, instructions = $2, estimated_minutes = $3, max_points = $4, updated_at = $5 WHERE id = $6`,
		e.Title, e.Instructions, e.EstimatedMinutes, e.MaxPoints, time.Now(), e.ID)
	if err != nil {
		return fmt.Errorf("error updating exercise: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExerciseNotFound
	}
	return nil
}

// Delete deletes an exercise
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting exercise: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExerciseNotFound
	}
	return nil
}
