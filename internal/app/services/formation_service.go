package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
	"github.com/eprofos/eprofos-api/internal/pkg/validation"
)

const entityFormation = "FORMATION"

// FormationService handles admin management of catalog formations
type FormationService struct {
	formationRepo *repositories.FormationRepository
	catalog       *CatalogService
	audit         *AuditService
	logger        zerolog.Logger
}

// NewFormationService creates a new FormationService
func NewFormationService(
	formationRepo *repositories.FormationRepository,
	catalog *CatalogService,
	audit *AuditService,
	logger zerolog.Logger,
) *FormationService {
	return &FormationService{
		formationRepo: formationRepo,
		catalog:       catalog,
		audit:         audit,
		logger:        logger,
	}
}

// Create creates a new formation. New formations start unpublished with a
// zero duration; the duration grows as content is attached.
func (s *FormationService) Create(ctx context.Context, actorID int64, req *dto.CreateFormationRequest) (*models.Formation, error) {
	slug := req.Slug
	if slug == "" {
		slug = validation.Slugify(req.Title)
	}

	formation := &models.Formation{
		Title:         req.Title,
		Slug:          slug,
		Description:   req.Description,
		Objectives:    req.Objectives,
		Prerequisites: req.Prerequisites,
		Category:      req.Category,
		Level:         models.FormationLevel(req.Level),
		PriceCents:    req.PriceCents,
	}

	if err := s.formationRepo.Create(ctx, formation); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionCreate, entityFormation, formation.ID, formation.Title)
	return formation, nil
}

// GetByID retrieves a formation with its content tree, published or not
func (s *FormationService) GetByID(ctx context.Context, id int64) (*models.Formation, error) {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.loadContentTree(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// List retrieves a page of formations for the admin view, drafts included
func (s *FormationService) List(ctx context.Context, filter dto.FormationFilter) (*dto.FormationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	formations, total, err := s.formationRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.FormationListResponse{
		Formations: formations,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

// Update updates a formation, including its publication flag
func (s *FormationService) Update(ctx context.Context, actorID, id int64, req *dto.UpdateFormationRequest) (*models.Formation, error) {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	formation.Title = req.Title
	if req.Slug != "" {
		formation.Slug = req.Slug
	}
	formation.Description = req.Description
	formation.Objectives = req.Objectives
	formation.Prerequisites = req.Prerequisites
	formation.Category = req.Category
	formation.Level = models.FormationLevel(req.Level)
	formation.PriceCents = req.PriceCents

	action := models.AuditActionUpdate
	detail := formation.Title
	if req.IsPublished != nil && *req.IsPublished != formation.IsPublished {
		formation.IsPublished = *req.IsPublished
		action = models.AuditActionStatus
		detail = fmt.Sprintf("%s published=%t", formation.Title, formation.IsPublished)
	}

	if err := s.formationRepo.Update(ctx, formation); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, action, entityFormation, formation.ID, detail)
	return formation, nil
}

// Delete deletes a formation without sessions. Its content tree goes with it.
func (s *FormationService) Delete(ctx context.Context, actorID, id int64) error {
	formation, err := s.formationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.formationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, models.AuditActionDelete, entityFormation, id, formation.Title)
	return nil
}
