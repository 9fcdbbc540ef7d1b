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
	"github.com/eprofos/eprofos-api/internal/pkg/dberrors"
)

// RegistrationRepository handles database operations for session registrations
type RegistrationRepository struct {
	db Querier
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *RegistrationRepository) WithTx(tx pgx.Tx) *RegistrationRepository {
	return &RegistrationRepository{db: tx}
}

const registrationColumns = `id, session_id, user_id, first_name, last_name, email, company, status, created_at, updated_at`

const registrationJoinedColumns = `r.id, r.session_id, r.user_id, r.first_name, r.last_name, r.email, r.company, r.status, r.created_at, r.updated_at`

func scanRegistration(row pgx.Row) (*models.SessionRegistration, error) {
	var reg models.SessionRegistration
	err := row.Scan(&reg.ID, &reg.SessionID, &reg.UserID, &reg.FirstName, &reg.LastName,
		&reg.Email, &reg.Company, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create creates a new registration in PENDING status
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.SessionRegistration) error {
	query := `
		INSERT INTO session_registrations (session_id, user_id, first_name, last_name, email, company, status)
		VALUES ($1, $2, $3, $4, LOWER($5), $6, 'PENDING')
		RETURNING id, email, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		reg.SessionID, reg.UserID, reg.FirstName, reg.LastName, reg.Email, reg.Company).
		Scan(&reg.ID, &reg.Email, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "session_registrations_session_id_email_key") {
			return apperrors.ErrAlreadyRegistered
		}
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

// GetByID retrieves a registration with its session and formation summary
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.SessionRegistration, error) {
	query := `
		SELECT ` + registrationJoinedColumns + `,
		       s.formation_id, s.start_date, s.end_date, s.location, s.status,
		       f.title, f.slug, f.duration_minutes
		FROM session_registrations r
		JOIN sessions s ON s.id = r.session_id
		JOIN formations f ON f.id = s.formation_id
		WHERE r.id = $1
	`

	var reg models.SessionRegistration
	var session models.Session
	var formation models.Formation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID, &reg.SessionID, &reg.UserID, &reg.FirstName, &reg.LastName,
		&reg.Email, &reg.Company, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt,
		&session.FormationID, &session.StartDate, &session.EndDate, &session.Location, &session.Status,
		&formation.Title, &formation.Slug, &formation.DurationMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}

	session.ID = reg.SessionID
	formation.ID = session.FormationID
	session.Formation = &formation
	reg.Session = &session
	return &reg, nil
}

// ListBySession retrieves a page of registrations for a session
func (r *RegistrationRepository) ListBySession(ctx context.Context, sessionID int64, offset uint64, limit int) ([]*models.SessionRegistration, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_registrations WHERE session_id = $1`, sessionID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting registrations: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+registrationColumns+` FROM session_registrations
		 WHERE session_id = $1 ORDER BY created_at ASC OFFSET $2 LIMIT $3`,
		sessionID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	regs, err := collectRegistrations(rows)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// ListAllBySession retrieves every registration of a session, for exports
func (r *RegistrationRepository) ListAllBySession(ctx context.Context, sessionID int64) ([]*models.SessionRegistration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+registrationColumns+` FROM session_registrations
		 WHERE session_id = $1 ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

// ListByEmail retrieves the registrations tied to an email address,
// newest session first, with session and formation summaries.
func (r *RegistrationRepository) ListByEmail(ctx context.Context, email string) ([]*models.SessionRegistration, error) {
	query := `
		SELECT ` + registrationJoinedColumns + `,
		       s.formation_id, s.start_date, s.end_date, s.location, s.status,
		       f.title, f.slug, f.duration_minutes
		FROM session_registrations r
		JOIN sessions s ON s.id = r.session_id
		JOIN formations f ON f.id = s.formation_id
		WHERE r.email = LOWER($1)
		ORDER BY s.start_date DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations by email: %w", err)
	}
	defer rows.Close()

	var regs []*models.SessionRegistration
	for rows.Next() {
		var reg models.SessionRegistration
		var session models.Session
		var formation models.Formation
		err := rows.Scan(
			&reg.ID, &reg.SessionID, &reg.UserID, &reg.FirstName, &reg.LastName,
			&reg.Email, &reg.Company, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt,
			&session.FormationID, &session.StartDate, &session.EndDate, &session.Location, &session.Status,
			&formation.Title, &formation.Slug, &formation.DurationMinutes)
		if err != nil {
			return nil, err
		}
		session.ID = reg.SessionID
		formation.ID = session.FormationID
		session.Formation = &formation
		reg.Session = &session
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}

func collectRegistrations(rows pgx.Rows) ([]*models.SessionRegistration, error) {
	var regs []*models.SessionRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// UpdateStatus moves a registration to a new status
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE session_registrations SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating registration status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	return nil
}

// AttachUser links a registration to a student account
func (r *RegistrationRepository) AttachUser(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE session_registrations SET user_id = $1, updated_at = $2 WHERE id = $3`,
		userID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error attaching user to registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	return nil
}
