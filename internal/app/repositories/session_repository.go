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

// SessionRepository handles database operations for training sessions
type SessionRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *SessionRepository) WithTx(tx pgx.Tx) *SessionRepository {
	return &SessionRepository{db: tx, sb: r.sb}
}

// Registrations in these statuses count against session capacity.
const activeRegistrationStatuses = `('PENDING', 'CONFIRMED', 'ATTENDED')`

const sessionSelect = `
	SELECT s.id, s.formation_id, s.start_date, s.end_date, s.location, s.capacity,
	       s.price_cents, s.status, s.created_at, s.updated_at, f.title, f.slug,
	       (SELECT COUNT(*) FROM session_registrations sr
	         WHERE sr.session_id = s.id AND sr.status IN ` + activeRegistrationStatuses + `) AS registered_count
	FROM sessions s
	JOIN formations f ON f.id = s.formation_id
`

func scanSessionRow(row pgx.Row) (*models.Session, error) {
	var s models.Session
	var formationTitle, formationSlug string
	err := row.Scan(&s.ID, &s.FormationID, &s.StartDate, &s.EndDate, &s.Location,
		&s.Capacity, &s.PriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&formationTitle, &formationSlug, &s.RegisteredCount)
	if err != nil {
		return nil, err
	}
	s.Formation = &models.Formation{ID: s.FormationID, Title: formationTitle, Slug: formationSlug}
	return &s, nil
}

// Create creates a new session in PLANNED status
func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (formation_id, start_date, end_date, location, capacity, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'PLANNED')
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.FormationID, s.StartDate, s.EndDate, s.Location, s.Capacity, s.PriceCents).
		Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a session with its formation summary and live
// registration count.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	s, err := scanSessionRow(r.db.QueryRow(ctx, sessionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return s, nil
}

// ListOpenByFormation retrieves the open upcoming sessions of a formation
// for the public catalog.
func (r *SessionRepository) ListOpenByFormation(ctx context.Context, formationID int64) ([]*models.Session, error) {
	rows, err := r.db.Query(ctx,
		sessionSelect+` WHERE s.formation_id = $1 AND s.status = 'OPEN' AND s.start_date >= $2 ORDER BY s.start_date ASC`,
		formationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error listing open sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// List retrieves sessions for the admin view, optionally filtered by
// formation and status, with the total row count.
func (r *SessionRepository) List(ctx context.Context, formationID int64, status string, offset uint64, limit int) ([]*models.Session, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("sessions s")
	if formationID > 0 {
		countQuery = countQuery.Where(squirrel.Eq{"s.formation_id": formationID})
	}
	if status != "" {
		countQuery = countQuery.Where(squirrel.Eq{"s.status": status})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build session count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sessions: %w", err)
	}

	query := sessionSelect + ` WHERE 1=1`
	args := []any{}
	argn := 1
	if formationID > 0 {
		query += fmt.Sprintf(" AND s.formation_id = $%d", argn)
		args = append(args, formationID)
		argn++
	}
	if status != "" {
		query += fmt.Sprintf(" AND s.status = $%d", argn)
		args = append(args, status)
		argn++
	}
	query += fmt.Sprintf(" ORDER BY s.start_date DESC OFFSET $%d LIMIT $%d", argn, argn+1)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func collectSessions(rows pgx.Rows) ([]*models.Session, error) {
	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Update updates a session's editable fields
func (r *SessionRepository) Update(ctx context.Context, s *models.Session) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sessions SET start_date = $1, end_date = $2, location = $3, capacity = $4, price_cents = $5, updated_at = $6 WHERE id = $7`,
		s.StartDate, s.EndDate, s.Location, s.Capacity, s.PriceCents, time.Now(), s.ID)
	if err != nil {
		return fmt.Errorf("error updating session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// UpdateStatus moves a session to a new status
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status models.SessionStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating session status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// CountActiveRegistrations counts the registrations holding a seat
func (r *SessionRepository) CountActiveRegistrations(ctx context.Context, sessionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_registrations WHERE session_id = $1 AND status IN `+activeRegistrationStatuses,
		sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// Delete deletes a session without registrations
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	var hasRegistrations bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM session_registrations WHERE session_id = $1)`, id).Scan(&hasRegistrations)
	if err != nil {
		return fmt.Errorf("error checking session registrations: %w", err)
	}
	if hasRegistrations {
		return apperrors.NewConflictError("session has registrations and cannot be deleted")
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}
