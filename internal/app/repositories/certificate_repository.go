package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/dberrors"
)

// CertificateRepository handles database operations for completion certificates
type CertificateRepository struct {
	db Querier
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CertificateRepository) WithTx(tx pgx.Tx) *CertificateRepository {
	return &CertificateRepository{db: tx}
}

const certificateJoinedColumns = `c.id, c.registration_id, c.number, c.verification_code, c.issued_at, c.revoked, c.created_at`

// certificateDetailQuery loads a certificate with the registration, session
// and formation it was issued for, which the PDF renderer needs in full.
const certificateDetailQuery = `
	SELECT ` + certificateJoinedColumns + `,
	       r.session_id, r.first_name, r.last_name, r.email, r.company, r.status,
	       s.formation_id, s.start_date, s.end_date, s.location,
	       f.title, f.slug, f.duration_minutes
	FROM certificates c
	JOIN session_registrations r ON r.id = c.registration_id
	JOIN sessions s ON s.id = r.session_id
	JOIN formations f ON f.id = s.formation_id
`

func scanCertificateDetail(row pgx.Row) (*models.Certificate, error) {
	var cert models.Certificate
	var reg models.SessionRegistration
	var session models.Session
	var formation models.Formation
	err := row.Scan(
		&cert.ID, &cert.RegistrationID, &cert.Number, &cert.VerificationCode,
		&cert.IssuedAt, &cert.Revoked, &cert.CreatedAt,
		&reg.SessionID, &reg.FirstName, &reg.LastName, &reg.Email, &reg.Company, &reg.Status,
		&session.FormationID, &session.StartDate, &session.EndDate, &session.Location,
		&formation.Title, &formation.Slug, &formation.DurationMinutes)
	if err != nil {
		return nil, err
	}

	reg.ID = cert.RegistrationID
	session.ID = reg.SessionID
	formation.ID = session.FormationID
	session.Formation = &formation
	reg.Session = &session
	cert.Registration = &reg
	return &cert, nil
}

// Create creates a certificate for a registration. At most one certificate
// may exist per registration.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	query := `
		INSERT INTO certificates (registration_id, number, verification_code, issued_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		cert.RegistrationID, cert.Number, cert.VerificationCode, cert.IssuedAt).
		Scan(&cert.ID, &cert.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "certificates_registration_id_key") {
			return apperrors.ErrCertificateAlreadyIssued
		}
		return fmt.Errorf("error creating certificate: %w", err)
	}
	return nil
}

// NextSequence returns the next per-year sequence number used to build
// certificate numbers.
func (r *CertificateRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM certificates WHERE EXTRACT(YEAR FROM issued_at) = $1`,
		year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("error computing certificate sequence: %w", err)
	}
	return seq, nil
}

// GetByID retrieves a certificate with its full issuance context
func (r *CertificateRepository) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	cert, err := scanCertificateDetail(r.db.QueryRow(ctx, certificateDetailQuery+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}
	return cert, nil
}

// GetByVerificationCode retrieves a certificate by its public verification code
func (r *CertificateRepository) GetByVerificationCode(ctx context.Context, code string) (*models.Certificate, error) {
	cert, err := scanCertificateDetail(r.db.QueryRow(ctx, certificateDetailQuery+` WHERE c.verification_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate by code: %w", err)
	}
	return cert, nil
}

// GetByRegistrationID retrieves the certificate issued for a registration
func (r *CertificateRepository) GetByRegistrationID(ctx context.Context, registrationID int64) (*models.Certificate, error) {
	cert, err := scanCertificateDetail(r.db.QueryRow(ctx, certificateDetailQuery+` WHERE c.registration_id = $1`, registrationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate by registration: %w", err)
	}
	return cert, nil
}

// ListByEmail retrieves the certificates issued for registrations of an email
func (r *CertificateRepository) ListByEmail(ctx context.Context, email string) ([]*models.Certificate, error) {
	rows, err := r.db.Query(ctx,
		certificateDetailQuery+` WHERE r.email = LOWER($1) ORDER BY c.issued_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates by email: %w", err)
	}
	defer rows.Close()

	var certs []*models.Certificate
	for rows.Next() {
		cert, err := scanCertificateDetail(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, rows.Err()
}

// Revoke marks a certificate as revoked. Revocation is not reversible.
func (r *CertificateRepository) Revoke(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE certificates SET revoked = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error revoking certificate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}
