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
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/dberrors"
)

// FormationRepository handles database operations for formations
type FormationRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewFormationRepository creates a new formation repository
func NewFormationRepository(db *pgxpool.Pool) *FormationRepository {
	return &FormationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *FormationRepository) WithTx(tx pgx.Tx) *FormationRepository {
	return &FormationRepository{db: tx, sb: r.sb}
}

const formationColumns = `id, title, slug, description, objectives, prerequisites, category, level, price_cents, duration_minutes, is_published, created_at, updated_at`

func scanFormation(row pgx.Row) (*models.Formation, error) {
	var f models.Formation
	err := row.Scan(
		&f.ID, &f.Title, &f.Slug, &f.Description, &f.Objectives, &f.Prerequisites,
		&f.Category, &f.Level, &f.PriceCents, &f.DurationMinutes, &f.IsPublished,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create creates a new formation
func (r *FormationRepository) Create(ctx context.Context, f *models.Formation) error {
	query := `
		INSERT INTO formations (title, slug, description, objectives, prerequisites, category, level, price_cents, duration_minutes, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, FALSE)
		RETURNING id, duration_minutes, is_published, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		f.Title, f.Slug, f.Description, f.Objectives, f.Prerequisites,
		f.Category, f.Level, f.PriceCents,
	).Scan(&f.ID, &f.DurationMinutes, &f.IsPublished, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "formations_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		return fmt.Errorf("error creating formation: %w", err)
	}

	return nil
}

// GetByID retrieves a formation by ID
func (r *FormationRepository) GetByID(ctx context.Context, id int64) (*models.Formation, error) {
	query := `SELECT ` + formationColumns + ` FROM formations WHERE id = $1`

	f, err := scanFormation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormationNotFound
		}
		return nil, fmt.Errorf("error retrieving formation: %w", err)
	}

	return f, nil
}

// GetBySlug retrieves a formation by slug, optionally restricted to
// published rows for the public catalog.
func (r *FormationRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Formation, error) {
	query := `SELECT ` + formationColumns + ` FROM formations WHERE slug = $1`
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}

	f, err := scanFormation(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormationNotFound
		}
		return nil, fmt.Errorf("error retrieving formation by slug: %w", err)
	}

	return f, nil
}

// List retrieves formations matching the filter, with the total row count
// for pagination.
func (r *FormationRepository) List(ctx context.Context, filter dto.FormationFilter, offset uint64, limit int) ([]*models.Formation, int64, error) {
	base := r.sb.Select(formationColumns).From("formations")
	countBase := r.sb.Select("COUNT(*)").From("formations")

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.PublishedOnly {
			b = b.Where(squirrel.Eq{"is_published": true})
		}
		if filter.Category != "" {
			b = b.Where(squirrel.Eq{"category": filter.Category})
		}
		if filter.Level != "" {
			b = b.Where(squirrel.Eq{"level": filter.Level})
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"title": pattern},
				squirrel.ILike{"description": pattern},
			})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(countBase).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build formation count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting formations: %w", err)
	}

	listSQL, listArgs, err := applyFilter(base).
		OrderBy("title ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build formation list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing formations: %w", err)
	}
	defer rows.Close()

	var formations []*models.Formation
	for rows.Next() {
		f, err := scanFormation(rows)
		if err != nil {
			return nil, 0, err
		}
		formations = append(formations, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return formations, total, nil
}

// ListAll retrieves every formation ordered by title, used for CSV export.
func (r *FormationRepository) ListAll(ctx context.Context) ([]*models.Formation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+formationColumns+` FROM formations ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing formations: %w", err)
	}
	defer rows.Close()

	var formations []*models.Formation
	for rows.Next() {
		f, err := scanFormation(rows)
		if err != nil {
			return nil, err
		}
		formations = append(formations, f)
	}
	return formations, rows.Err()
}

// Update updates an existing formation
func (r *FormationRepository) Update(ctx context.Context, f *models.Formation) error {
	query := `
		UPDATE formations
		SET title = $1, slug = $2, description = $3, objectives = $4, prerequisites = $5,
		    category = $6, level = $7, price_cents = $8, is_published = $9, updated_at = $10
		WHERE id = $11
	`

	cmdTag, err := r.db.Exec(ctx, query,
		f.Title, f.Slug, f.Description, f.Objectives, f.Prerequisites,
		f.Category, f.Level, f.PriceCents, f.IsPublished, time.Now(), f.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "formations_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		return fmt.Errorf("error updating formation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFormationNotFound
	}

	return nil
}

// Delete deletes a formation. Formations with scheduled sessions cannot be
// deleted; content rows go with it through ON DELETE CASCADE.
func (r *FormationRepository) Delete(ctx context.Context, id int64) error {
	var hasSessions bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE formation_id = $1)`, id).Scan(&hasSessions)
	if err != nil {
		return fmt.Errorf("error checking formation sessions: %w", err)
	}
	if hasSessions {
		return apperrors.ErrFormationHasSession
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting formation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFormationNotFound
	}

	return nil
}

// RecomputeDuration refreshes the formation duration from its modules and
// returns the new value. Last link of the duration cascade.
func (r *FormationRepository) RecomputeDuration(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE formations f
		SET duration_minutes = COALESCE((SELECT SUM(duration_minutes) FROM modules WHERE formation_id = f.id), 0),
		    updated_at = NOW()
		WHERE f.id = $1
		RETURNING duration_minutes
	`

	var duration int
	if err := r.db.QueryRow(ctx, query, id).Scan(&duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrFormationNotFound
		}
		return 0, fmt.Errorf("error recomputing formation duration: %w", err)
	}

	return duration, nil
}
