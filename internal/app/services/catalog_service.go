package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// CatalogService serves the public training catalog: published formations,
// their full content tree and their open sessions.
type CatalogService struct {
	formationRepo *repositories.FormationRepository
	moduleRepo    *repositories.ModuleRepository
	chapterRepo   *repositories.ChapterRepository
	courseRepo    *repositories.CourseRepository
	exerciseRepo  *repositories.ExerciseRepository
	qcmRepo       *repositories.QCMRepository
	sessionRepo   *repositories.SessionRepository
	logger        zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	formationRepo *repositories.FormationRepository,
	moduleRepo *repositories.ModuleRepository,
	chapterRepo *repositories.ChapterRepository,
	courseRepo *repositories.CourseRepository,
	exerciseRepo *repositories.ExerciseRepository,
	qcmRepo *repositories.QCMRepository,
	sessionRepo *repositories.SessionRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		formationRepo: formationRepo,
		moduleRepo:    moduleRepo,
		chapterRepo:   chapterRepo,
		courseRepo:    courseRepo,
		exerciseRepo:  exerciseRepo,
		qcmRepo:       qcmRepo,
		sessionRepo:   sessionRepo,
		logger:        logger,
	}
}

// ListFormations retrieves a page of published formations
func (s *CatalogService) ListFormations(ctx context.Context, filter dto.FormationFilter) (*dto.FormationListResponse, error) {
	filter.PublishedOnly = true

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

// GetFormationBySlug retrieves a published formation with its full content
// tree: modules, chapters, courses, exercises and QCMs.
func (s *CatalogService) GetFormationBySlug(ctx context.Context, slug string) (*models.Formation, error) {
	formation, err := s.formationRepo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	if err := s.loadContentTree(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// GetOpenSessions retrieves the open upcoming sessions of a published
// formation.
func (s *CatalogService) GetOpenSessions(ctx context.Context, slug string) ([]*models.Session, error) {
	formation, err := s.formationRepo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.ListOpenByFormation(ctx, formation.ID)
}

// loadContentTree assembles the nested catalog structure of a formation.
// The tree is small (tens of rows) so per-level queries are fine here.
func (s *CatalogService) loadContentTree(ctx context.Context, formation *models.Formation) error {
	modules, err := s.moduleRepo.ListByFormation(ctx, formation.ID)
	if err != nil {
		return err
	}
	formation.Modules = modules

	for _, module := range modules {
		chapters, err := s.chapterRepo.ListByModule(ctx, module.ID)
		if err != nil {
			return err
		}
		module.Chapters = chapters

		for _, chapter := range chapters {
			courses, err := s.courseRepo.ListByChapter(ctx, chapter.ID)
			if err != nil {
				return err
			}
			chapter.Courses = courses

			for _, course := range courses {
				exercises, err := s.exerciseRepo.ListByCourse(ctx, course.ID)
				if err != nil {
					return err
				}
				course.Exercises = exercises

				qcms, err := s.qcmRepo.ListByCourse(ctx, course.ID)
				if err != nil {
					return err
				}
				course.QCMs = qcms
			}
		}
	}

	return nil
}
