package services

import (
	"context"
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
)

const entityNeedsAnalysis = "NEEDS_ANALYSIS"

// NeedsAnalysisService manages the Qualiopi pre-training needs analysis:
// tokenized form links sent to prospects, their public form views and the
// single submission each link accepts.
type NeedsAnalysisService struct {
	pool          *pgxpool.Pool
	analyses      *repositories.NeedsAnalysisRepository
	formationRepo *repositories.FormationRepository
	auditRepo     *repositories.AuditLogRepository
	audit         *AuditService
	mailer        email.Service
	windowDays    int
	logger        zerolog.Logger
}

// NewNeedsAnalysisService creates a new NeedsAnalysisService
func NewNeedsAnalysisService(
	pool *pgxpool.Pool,
	analyses *repositories.NeedsAnalysisRepository,
	formationRepo *repositories.FormationRepository,
	auditRepo *repositories.AuditLogRepository,
	audit *AuditService,
	mailer email.Service,
	windowDays int,
	logger zerolog.Logger,
) *NeedsAnalysisService {
	return &NeedsAnalysisService{
		pool:          pool,
		analyses:      analyses,
		formationRepo: formationRepo,
		auditRepo:     auditRepo,
		audit:         audit,
		mailer:        mailer,
		windowDays:    windowDays,
		logger:        logger,
	}
}

// Create creates a needs-analysis request in PENDING status with a fresh
// form token. Nothing is emailed until Send.
func (s *NeedsAnalysisService) Create(ctx context.Context, actorID int64, req *dto.CreateAnalysisRequest) (*models.NeedsAnalysisRequest, error) {
	if req.FormationID != nil {
		if _, err := s.formationRepo.GetByID(ctx, *req.FormationID); err != nil {
			return nil, err
		}
	}

	request := &models.NeedsAnalysisRequest{
		Token:       uuid.New().String(),
		Type:        models.AnalysisType(req.Type),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
		FormationID: req.FormationID,
	}

	if err := s.analyses.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionCreate, entityNeedsAnalysis, request.ID,
		fmt.Sprintf("%s %s", request.Type, request.Email))
	return request, nil
}

// Send emails the form link and opens the submission window. Only PENDING
// requests can be sent; resending an expired link goes through Create again.
func (s *NeedsAnalysisService) Send(ctx context.Context, actorID, id int64) (*models.NeedsAnalysisRequest, error) {
	request, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.AnalysisPending {
		return nil, apperrors.ErrAnalysisNotSendable
	}

	sentAt := time.Now()
	expiresAt := sentAt.AddDate(0, 0, s.windowDays)

	if err := s.analyses.MarkSent(ctx, id, sentAt, expiresAt); err != nil {
		return nil, err
	}
	request.Status = models.AnalysisSent
	request.SentAt = &sentAt
	request.ExpiresAt = &expiresAt

	name := request.FirstName + " " + request.LastName
	if err := s.mailer.SendNeedsAnalysisInvitation(request.Email, name, request.Token, expiresAt); err != nil {
		s.logger.Error().Err(err).Int64("requestID", id).Msg("Failed to send needs analysis invitation")
	}

	s.audit.Record(ctx, actorID, models.AuditActionSend, entityNeedsAnalysis, id, request.Email)
	return request, nil
}

// GetFormInfo resolves a public form token into the prefill data the form
// needs. Opening an expired link flips the request to EXPIRED on the spot.
func (s *NeedsAnalysisService) GetFormInfo(ctx context.Context, token string) (*dto.AnalysisFormInfo, error) {
	request, err := s.resolveLiveRequest(ctx, token)
	if err != nil {
		return nil, err
	}

	info := &dto.AnalysisFormInfo{
		Type:        request.Type,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		CompanyName: request.CompanyName,
		ExpiresAt:   request.ExpiresAt.Format(time.RFC3339),
	}

	if request.FormationID != nil {
		formation, err := s.formationRepo.GetByID(ctx, *request.FormationID)
		if err == nil {
			info.FormationTitle = formation.Title
		}
	}
	return info, nil
}

// Submit stores the single form submission of a tokenized link. The payload
// variant must match the request type; the request flips to COMPLETED in the
// same transaction.
func (s *NeedsAnalysisService) Submit(ctx context.Context, token string, req *dto.SubmitAnalysisRequest) error {
	request, err := s.resolveLiveRequest(ctx, token)
	if err != nil {
		return err
	}

	switch request.Type {
	case models.AnalysisCompany:
		if req.Company == nil {
			return apperrors.ErrAnalysisTypeMismatch
		}
	case models.AnalysisIndividual:
		if req.Individual == nil {
			return apperrors.ErrAnalysisTypeMismatch
		}
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		analyses := s.analyses.WithTx(tx)

		if request.Type == models.AnalysisCompany {
			form := &models.CompanyNeedsAnalysis{
				RequestID:          request.ID,
				CompanyName:        req.Company.CompanyName,
				Siret:              req.Company.Siret,
				ContactName:        req.Company.ContactName,
				ContactRole:        req.Company.ContactRole,
				EmployeeCount:      req.Company.EmployeeCount,
				Sector:             req.Company.Sector,
				TraineeCount:       req.Company.TraineeCount,
				TrainingObjectives: req.Company.TrainingObjectives,
				CurrentSkills:      req.Company.CurrentSkills,
				Constraints:        req.Company.Constraints,
				FundingPlan:        req.Company.FundingPlan,
			}
			if err := analyses.CreateCompanyAnalysis(ctx, form); err != nil {
				return err
			}
		} else {
			form := &models.IndividualNeedsAnalysis{
				RequestID:           request.ID,
				ProfessionalStatus:  req.Individual.ProfessionalStatus,
				CurrentPosition:     req.Individual.CurrentPosition,
				EducationLevel:      req.Individual.EducationLevel,
				ProjectDescription:  req.Individual.ProjectDescription,
				TrainingObjectives:  req.Individual.TrainingObjectives,
				Availability:        req.Individual.Availability,
				FundingPlan:         req.Individual.FundingPlan,
				DisabilityAdjusting: req.Individual.DisabilityAdjusting,
			}
			if err := analyses.CreateIndividualAnalysis(ctx, form); err != nil {
				return err
			}
		}

		return analyses.MarkCompleted(ctx, request.ID, time.Now())
	})
}

// resolveLiveRequest loads a request by token and enforces the submission
// window. Requests found past their deadline are flipped to EXPIRED lazily.
func (s *NeedsAnalysisService) resolveLiveRequest(ctx context.Context, token string) (*models.NeedsAnalysisRequest, error) {
	request, err := s.analyses.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch request.Status {
	case models.AnalysisCompleted:
		return nil, apperrors.ErrAnalysisAlreadyDone
	case models.AnalysisExpired:
		return nil, apperrors.ErrAnalysisTokenExpired
	case models.AnalysisCancelled, models.AnalysisPending:
		return nil, apperrors.ErrAnalysisRequestNotFound
	}

	if request.IsExpiredAt(now) {
		if err := s.analyses.MarkExpired(ctx, request.ID); err != nil {
			s.logger.Error().Err(err).Int64("requestID", request.ID).Msg("Failed to expire needs analysis request")
		}
		return nil, apperrors.ErrAnalysisTokenExpired
	}

	return request, nil
}

// List retrieves a page of needs-analysis requests for the admin view
func (s *NeedsAnalysisService) List(ctx context.Context, analysisType, status string, page, size int) (*dto.AnalysisListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	requests, total, err := s.analyses.List(ctx, analysisType, status, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.AnalysisListResponse{
		Requests:   requests,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetDetail retrieves a request together with its submitted form, if any
func (s *NeedsAnalysisService) GetDetail(ctx context.Context, id int64) (*dto.AnalysisDetailResponse, error) {
	request, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.AnalysisDetailResponse{Request: request}
	if request.Status != models.AnalysisCompleted {
		return detail, nil
	}

	switch request.Type {
	case models.AnalysisCompany:
		if detail.Company, err = s.analyses.GetCompanyByRequestID(ctx, request.ID); err != nil {
			return nil, err
		}
	case models.AnalysisIndividual:
		if detail.Individual, err = s.analyses.GetIndividualByRequestID(ctx, request.ID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// Cancel withdraws a request. Completed requests cannot be cancelled.
func (s *NeedsAnalysisService) Cancel(ctx context.Context, actorID, id int64) error {
	request, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status == models.AnalysisCompleted {
		return apperrors.ErrAnalysisAlreadyDone
	}
	if request.Status == models.AnalysisCancelled {
		return nil
	}

	if err := s.analyses.Cancel(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, models.AuditActionStatus, entityNeedsAnalysis, id,
		fmt.Sprintf("%s -> %s", request.Status, models.AnalysisCancelled))
	return nil
}
