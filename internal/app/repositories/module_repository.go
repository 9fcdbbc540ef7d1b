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

// ModuleRepository handles database operations for formation modules
type ModuleRepository struct {
	db Querier
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ModuleRepository) WithTx(tx pgx.Tx) *ModuleRepository {
	return &ModuleRepository{db: tx}
}

const moduleColumns = `id, formation_id, title, description, position, duration_minutes, created_at, updated_at`

func scanModule(row pgx.Row) (*models.Module, error) {
	var m models.Module
	err := row.Scan(&m.ID, &m.FormationID, &m.Title, &m.Description, &m.Position,
		&m.DurationMinutes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create creates a new module
func (r *ModuleRepository) Create(ctx context.Context, m *models.Module) error {
	query := `
		INSERT INTO modules (formation_id, title, description, position, duration_minutes)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, duration_minutes, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, m.FormationID, m.Title, m.Description, m.Position).
		Scan(&m.ID, &m.DurationMinutes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating module: %w", err)
	}
	return nil
}

// GetByID retrieves a module by ID
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	m, err := scanModule(r.db.QueryRow(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}
	return m, nil
}

// ListByFormation retrieves the modules of a formation ordered by position
func (r *ModuleRepository) ListByFormation(ctx context.Context, formationID int64) ([]*models.Module, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE formation_id = $1 ORDER BY position ASC, id ASC`,
		formationID)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// Update updates a module's editable fields
func (r *ModuleRepository) Update(ctx context.Context, m *models.Module) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE modules SET title = $1, description = $2, position = $3, updated_at = $4 WHERE id = $5`,
		m.Title, m.Description, m.Position, time.Now(), m.ID)
	if err != nil {
		return fmt.Errorf("error updating module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// Delete deletes a module; chapters and below go with it via ON DELETE CASCADE
func (r *ModuleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// RecomputeDuration refreshes the module duration from its chapters
func (r *ModuleRepository) RecomputeDuration(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE modules m
		SET duration_minutes = COALESCE((SELECT SUM(duration_minutes) FROM chapters WHERE module_id = m.id), 0),
		    updated_at = NOW()
		WHERE m.id = $1
		RETURNING duration_minutes
	`

	var duration int
	if err := r.db.QueryRow(ctx, query, id).Scan(&duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrModuleNotFound
		}
		return 0, fmt.Errorf("error recomputing module duration: %w", err)
	}
	return duration, nil
}
