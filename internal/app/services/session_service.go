package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

const entitySession = "SESSION"

const sessionDateLayout = "2006-01-02"

// SessionService handles admin management of training sessions
type SessionService struct {
	sessionRepo   *repositories.SessionRepository
	formationRepo *repositories.FormationRepository
	audit         *AuditService
	logger        zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo *repositories.SessionRepository,
	formationRepo *repositories.FormationRepository,
	audit *AuditService,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:   sessionRepo,
		formationRepo: formationRepo,
		audit:         audit,
		logger:        logger,
	}
}

func parseSessionDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(sessionDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("startDate must be formatted as YYYY-MM-DD")
	}
	end, err := time.Parse(sessionDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate must be formatted as YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate cannot precede startDate")
	}
	return start, end, nil
}

// Create schedules a new session of a formation in PLANNED status
func (s *SessionService) Create(ctx context.Context, actorID int64, req *dto.CreateSessionRequest) (*models.Session, error) {
	formation, err := s.formationRepo.GetByID(ctx, req.FormationID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseSessionDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		FormationID: req.FormationID,
		StartDate:   start,
		EndDate:     end,
		Location:    req.Location,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	session.Formation = &models.Formation{ID: formation.ID, Title: formation.Title, Slug: formation.Slug}

	s.audit.Record(ctx, actorID, models.AuditActionCreate, entitySession, session.ID,
		fmt.Sprintf("%s %s", formation.Title, req.StartDate))
	return session, nil
}

// GetByID retrieves a session with its registration count
func (s *SessionService) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// List retrieves a page of sessions, optionally filtered by formation and
// status.
func (s *SessionService) List(ctx context.Context, formationID int64, status string, page, size int) (*dto.SessionListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sessions, total, err := s.sessionRepo.List(ctx, formationID, status, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.SessionListResponse{
		Sessions:   sessions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Update updates a session's schedule, location, capacity and price.
// Shrinking the capacity below the current registration count is rejected.
func (s *SessionService) Update(ctx context.Context, actorID, id int64, req *dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end, err := parseSessionDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.Capacity < session.RegisteredCount {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("capacity %d is below the current registration count %d", req.Capacity, session.RegisteredCount))
	}

	session.StartDate = start
	session.EndDate = end
	session.Location = req.Location
	session.Capacity = req.Capacity
	session.PriceCents = req.PriceCents

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionUpdate, entitySession, session.ID, req.StartDate)
	return session, nil
}

// ChangeStatus moves a session through its lifecycle. Only transitions
// allowed by the status graph go through; CLOSED and CANCELLED are terminal.
func (s *SessionService) ChangeStatus(ctx context.Context, actorID, id int64, target models.SessionStatus) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Status.CanTransitionTo(target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatusTransition,
			fmt.Sprintf("cannot move session from %s to %s", session.Status, target))
	}

	// A session cannot reopen past its capacity.
	if target == models.SessionOpen && session.RegisteredCount >= session.Capacity {
		return nil, apperrors.ErrSessionFull
	}

	if err := s.sessionRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	prev := session.Status
	session.Status = target

	s.audit.Record(ctx, actorID, models.AuditActionStatus, entitySession, id,
		fmt.Sprintf("%s -> %s", prev, target))
	return session, nil
}

// Delete deletes a session without registrations
func (s *SessionService) Delete(ctx context.Context, actorID, id int64) error {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, models.AuditActionDelete, entitySession, id,
		session.StartDate.Format(sessionDateLayout))
	return nil
}
