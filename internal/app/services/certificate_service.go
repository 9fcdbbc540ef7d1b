package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/db"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/email"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
	"github.com/eprofos/eprofos-api/internal/pkg/pdfgen"
)

const entityCertificate = "CERTIFICATE"

// CertificateService issues, revokes, renders and verifies completion
// certificates.
type CertificateService struct {
	pool      *pgxpool.Pool
	certs     *repositories.CertificateRepository
	regs      *repositories.RegistrationRepository
	auditRepo *repositories.AuditLogRepository
	audit     *AuditService
	mailer    email.Service
	baseURL   string
	logger    zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	pool *pgxpool.Pool,
	certs *repositories.CertificateRepository,
	regs *repositories.RegistrationRepository,
	auditRepo *repositories.AuditLogRepository,
	audit *AuditService,
	mailer email.Service,
	baseURL string,
	logger zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		pool:      pool,
		certs:     certs,
		regs:      regs,
		auditRepo: auditRepo,
		audit:     audit,
		mailer:    mailer,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Issue issues a certificate for an attended registration. Numbers follow
// EPR-<year>-<sequence>; the verification code is an opaque uuid.
func (s *CertificateService) Issue(ctx context.Context, actorID, registrationID int64) (*models.Certificate, error) {
	registration, err := s.regs.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration.Status != models.RegistrationAttended {
		return nil, apperrors.ErrRegistrationNotAttendant
	}

	now := time.Now()
	certificate := &models.Certificate{
		RegistrationID:   registrationID,
		VerificationCode: uuid.New().String(),
		IssuedAt:         now,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		seq, err := s.certs.WithTx(tx).NextSequence(ctx, now.Year())
		if err != nil {
			return err
		}
		certificate.Number = fmt.Sprintf("EPR-%d-%04d", now.Year(), seq)

		if err := s.certs.WithTx(tx).Create(ctx, certificate); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionIssue,
			entityCertificate, certificate.ID, certificate.Number)
	})
	if err != nil {
		return nil, err
	}
	certificate.Registration = registration

	if err := s.mailer.SendCertificateIssued(registration.Email, registration.FullName(), certificate.Number); err != nil {
		s.logger.Error().Err(err).Int64("certificateID", certificate.ID).
			Msg("Failed to send certificate notification")
	}

	return certificate, nil
}

// GetByID retrieves a certificate with its issuance context
func (s *CertificateService) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	return s.certs.GetByID(ctx, id)
}

// ListByEmail retrieves the certificates issued to a student's email
func (s *CertificateService) ListByEmail(ctx context.Context, emailAddr string) ([]*models.Certificate, error) {
	return s.certs.ListByEmail(ctx, emailAddr)
}

// Revoke marks a certificate as revoked. The verification endpoint keeps
// answering for revoked certificates and reports them as invalid.
func (s *CertificateService) Revoke(ctx context.Context, actorID, id int64) error {
	certificate, err := s.certs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if certificate.Revoked {
		return apperrors.ErrCertificateRevoked
	}

	if err := s.certs.Revoke(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, models.AuditActionRevoke, entityCertificate, id, certificate.Number)
	return nil
}

// RenderPDF renders the certificate PDF. Revoked certificates cannot be
// rendered.
func (s *CertificateService) RenderPDF(ctx context.Context, id int64) ([]byte, *models.Certificate, error) {
	certificate, err := s.certs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if certificate.Revoked {
		return nil, nil, apperrors.ErrCertificateRevoked
	}

	registration := certificate.Registration
	session := registration.Session
	formation := session.Formation

	pdf, err := pdfgen.RenderCertificate(pdfgen.CertificateData{
		Number:           certificate.Number,
		VerificationCode: certificate.VerificationCode,
		TraineeName:      registration.FullName(),
		FormationTitle:   formation.Title,
		DurationLabel:    helpers.FormatMinutes(formation.DurationMinutes),
		SessionStart:     session.StartDate,
		SessionEnd:       session.EndDate,
		IssuedAt:         certificate.IssuedAt,
		VerifyURL:        fmt.Sprintf("%s/api/v1/certificates/verify/%s", s.baseURL, certificate.VerificationCode),
	})
	if err != nil {
		return nil, nil, err
	}
	return pdf, certificate, nil
}

// Verify resolves a public verification code. Unknown codes yield a plain
// invalid answer rather than an error so the endpoint leaks nothing.
func (s *CertificateService) Verify(ctx context.Context, code string) (*dto.CertificateVerification, error) {
	certificate, err := s.certs.GetByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrCertificateNotFound) {
			return &dto.CertificateVerification{Valid: false}, nil
		}
		return nil, err
	}

	verification := &dto.CertificateVerification{
		Valid:       !certificate.Revoked,
		Number:      certificate.Number,
		TraineeName: certificate.Registration.FullName(),
		IssuedAt:    certificate.IssuedAt,
		Revoked:     certificate.Revoked,
	}
	if certificate.Registration.Session != nil && certificate.Registration.Session.Formation != nil {
		verification.FormationTitle = certificate.Registration.Session.Formation.Title
	}
	return verification, nil
}
