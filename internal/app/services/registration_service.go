package services

import (
	"context"
	"fmt"

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
)

const entityRegistration = "REGISTRATION"

// RegistrationService handles public session registration and the admin
// registration lifecycle.
type RegistrationService struct {
	pool      *pgxpool.Pool
	sessions  *repositories.SessionRepository
	regs      *repositories.RegistrationRepository
	audit     *AuditService
	auditRepo *repositories.AuditLogRepository
	mailer    email.Service
	logger    zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	pool *pgxpool.Pool,
	sessions *repositories.SessionRepository,
	regs *repositories.RegistrationRepository,
	auditRepo *repositories.AuditLogRepository,
	audit *AuditService,
	mailer email.Service,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		pool:      pool,
		sessions:  sessions,
		regs:      regs,
		audit:     audit,
		auditRepo: auditRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// Register enrols a person into an open session. The capacity check, the
// insert and the FULL flip run in one transaction so the session never
// oversells. The optional userID ties the registration to a student account.
func (s *RegistrationService) Register(ctx context.Context, sessionID int64, userID *int64, req *dto.RegisterForSessionRequest) (*models.SessionRegistration, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionOpen {
		return nil, apperrors.ErrSessionNotOpen
	}

	registration := &models.SessionRegistration{
		SessionID: sessionID,
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		count, err := s.sessions.WithTx(tx).CountActiveRegistrations(ctx, sessionID)
		if err != nil {
			return err
		}
		if count >= session.Capacity {
			return apperrors.ErrSessionFull
		}

		if err := s.regs.WithTx(tx).Create(ctx, registration); err != nil {
			return err
		}

		// Last seat taken: the session flips to FULL.
		if count+1 >= session.Capacity {
			return s.sessions.WithTx(tx).UpdateStatus(ctx, sessionID, models.SessionFull)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if session.Formation != nil {
		if err := s.mailer.SendRegistrationConfirmation(registration.Email, registration.FullName(),
			session.Formation.Title, session.StartDate); err != nil {
			s.logger.Error().Err(err).Int64("registrationID", registration.ID).
				Msg("Failed to send registration confirmation")
		}
	}

	return registration, nil
}

// GetByID retrieves a registration with its session context
func (s *RegistrationService) GetByID(ctx context.Context, id int64) (*models.SessionRegistration, error) {
	return s.regs.GetByID(ctx, id)
}

// ListBySession retrieves a page of a session's registrations
func (s *RegistrationService) ListBySession(ctx context.Context, sessionID int64, page, size int) (*dto.RegistrationListResponse, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	regs, total, err := s.regs.ListBySession(ctx, sessionID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.RegistrationListResponse{
		Registrations: regs,
		Pagination:    helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// ListByEmail retrieves the registrations of a student's email
func (s *RegistrationService) ListByEmail(ctx context.Context, emailAddr string) ([]*models.SessionRegistration, error) {
	return s.regs.ListByEmail(ctx, emailAddr)
}

// ChangeStatus moves a registration through its lifecycle. Cancelling a
// registration of a FULL session reopens the session.
func (s *RegistrationService) ChangeStatus(ctx context.Context, actorID, id int64, target models.RegistrationStatus) (*models.SessionRegistration, error) {
	registration, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !registration.Status.CanTransitionTo(target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatusTransition,
			fmt.Sprintf("cannot move registration from %s to %s", registration.Status, target))
	}

	prev := registration.Status
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.regs.WithTx(tx).UpdateStatus(ctx, id, target); err != nil {
			return err
		}

		if target == models.RegistrationCancelled {
			session, err := s.sessions.WithTx(tx).GetByID(ctx, registration.SessionID)
			if err != nil {
				return err
			}
			if session.Status == models.SessionFull {
				if err := s.sessions.WithTx(tx).UpdateStatus(ctx, session.ID, models.SessionOpen); err != nil {
					return err
				}
			}
		}

		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionStatus,
			entityRegistration, id, fmt.Sprintf("%s -> %s", prev, target))
	})
	if err != nil {
		return nil, err
	}

	registration.Status = target
	return registration, nil
}
