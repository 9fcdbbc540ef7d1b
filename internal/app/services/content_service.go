package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/db"
)

// Audited entity types for catalog content
const (
	entityModule   = "MODULE"
	entityChapter  = "CHAPTER"
	entityCourse   = "COURSE"
	entityExercise = "EXERCISE"
	entityQCM      = "QCM"
)

// ContentService manages the catalog content tree under a formation and
// maintains the duration chain. Every mutation recomputes the durations of
// the affected node and its ancestors, bottom-up, inside one transaction.
type ContentService struct {
	pool          *pgxpool.Pool
	formationRepo *repositories.FormationRepository
	moduleRepo    *repositories.ModuleRepository
	chapterRepo   *repositories.ChapterRepository
	courseRepo    *repositories.CourseRepository
	exerciseRepo  *repositories.ExerciseRepository
	qcmRepo       *repositories.QCMRepository
	auditRepo     *repositories.AuditLogRepository
	audit         *AuditService
	logger        zerolog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	audit *AuditService,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{
		pool:          pool,
		formationRepo: repos.FormationRepository,
		moduleRepo:    repos.ModuleRepository,
		chapterRepo:   repos.ChapterRepository,
		courseRepo:    repos.CourseRepository,
		exerciseRepo:  repos.ExerciseRepository,
		qcmRepo:       repos.QCMRepository,
		auditRepo:     repos.AuditLogRepository,
		audit:         audit,
		logger:        logger,
	}
}

// cascadeFromCourse recomputes a course duration and everything above it
func (s *ContentService) cascadeFromCourse(ctx context.Context, tx pgx.Tx, courseID int64) error {
	if _, err := s.courseRepo.WithTx(tx).RecomputeDuration(ctx, courseID); err != nil {
		return err
	}
	course, err := s.courseRepo.WithTx(tx).GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	return s.cascadeFromChapter(ctx, tx, course.ChapterID)
}

// cascadeFromChapter recomputes a chapter duration and everything above it
func (s *ContentService) cascadeFromChapter(ctx context.Context, tx pgx.Tx, chapterID int64) error {
	if _, err := s.chapterRepo.WithTx(tx).RecomputeDuration(ctx, chapterID); err != nil {
		return err
	}
	chapter, err := s.chapterRepo.WithTx(tx).GetByID(ctx, chapterID)
	if err != nil {
		return err
	}
	return s.cascadeFromModule(ctx, tx, chapter.ModuleID)
}

// cascadeFromModule recomputes a module duration and its formation
func (s *ContentService) cascadeFromModule(ctx context.Context, tx pgx.Tx, moduleID int64) error {
	if _, err := s.moduleRepo.WithTx(tx).RecomputeDuration(ctx, moduleID); err != nil {
		return err
	}
	module, err := s.moduleRepo.WithTx(tx).GetByID(ctx, moduleID)
	if err != nil {
		return err
	}
	_, err = s.formationRepo.WithTx(tx).RecomputeDuration(ctx, module.FormationID)
	return err
}

// --- Modules ---

// CreateModule adds an empty module to a formation
func (s *ContentService) CreateModule(ctx context.Context, actorID int64, req *dto.CreateModuleRequest) (*models.Module, error) {
	if _, err := s.formationRepo.GetByID(ctx, req.FormationID); err != nil {
		return nil, err
	}

	module := &models.Module{
		FormationID: req.FormationID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.moduleRepo.WithTx(tx).Create(ctx, module); err != nil {
			return err
		}
		if _, err := s.formationRepo.WithTx(tx).RecomputeDuration(ctx, module.FormationID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionCreate, entityModule, module.ID, module.Title)
	})
	if err != nil {
		return nil, err
	}
	return module, nil
}

// GetModule retrieves a module
func (s *ContentService) GetModule(ctx context.Context, id int64) (*models.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

// UpdateModule updates a module's title, description and position
func (s *ContentService) UpdateModule(ctx context.Context, actorID, id int64, req *dto.UpdateModuleRequest) (*models.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	module.Title = req.Title
	module.Description = req.Description
	module.Position = req.Position

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionUpdate, entityModule, module.ID, module.Title)
	return module, nil
}

// DeleteModule deletes a module and refreshes the formation duration
func (s *ContentService) DeleteModule(ctx context.Context, actorID, id int64) error {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.moduleRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if _, err := s.formationRepo.WithTx(tx).RecomputeDuration(ctx, module.FormationID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionDelete, entityModule, id, module.Title)
	})
}

// --- Chapters ---

// CreateChapter adds a chapter to a module
func (s *ContentService) CreateChapter(ctx context.Context, actorID int64, req *dto.CreateChapterRequest) (*models.Chapter, error) {
	if _, err := s.moduleRepo.GetByID(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.chapterRepo.WithTx(tx).Create(ctx, chapter); err != nil {
			return err
		}
		if err := s.cascadeFromModule(ctx, tx, chapter.ModuleID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionCreate, entityChapter, chapter.ID, chapter.Title)
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// GetChapter retrieves a chapter
func (s *ContentService) GetChapter(ctx context.Context, id int64) (*models.Chapter, error) {
	return s.chapterRepo.GetByID(ctx, id)
}

// UpdateChapter updates a chapter's title, description and position
func (s *ContentService) UpdateChapter(ctx context.Context, actorID, id int64, req *dto.UpdateChapterRequest) (*models.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapter.Title = req.Title
	chapter.Description = req.Description
	chapter.Position = req.Position

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, models.AuditActionUpdate, entityChapter, chapter.ID, chapter.Title)
	return chapter, nil
}

// DeleteChapter deletes a chapter and refreshes the durations above it
func (s *ContentService) DeleteChapter(ctx context.Context, actorID, id int64) error {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.chapterRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := s.cascadeFromModule(ctx, tx, chapter.ModuleID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionDelete, entityChapter, id, chapter.Title)
	})
}

// --- Courses ---

// CreateCourse adds a course to a chapter. Its initial duration is its
// lecture time; the chain above absorbs it in the same transaction.
func (s *ContentService) CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.chapterRepo.GetByID(ctx, req.ChapterID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ChapterID:      req.ChapterID,
		Title:          req.Title,
		Type:           models.CourseType(req.Type),
		Content:        req.Content,
		Position:       req.Position,
		LectureMinutes: req.LectureMinutes,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.WithTx(tx).Create(ctx, course); err != nil {
			return err
		}
		if err := s.cascadeFromChapter(ctx, tx, course.ChapterID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionCreate, entityCourse, course.ID, course.Title)
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourse retrieves a course with its exercises and QCMs
func (s *ContentService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course.Exercises, err = s.exerciseRepo.ListByCourse(ctx, id); err != nil {
		return nil, err
	}
	if course.QCMs, err = s.qcmRepo.ListByCourse(ctx, id); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse updates a course. A lecture time change ripples up the chain.
func (s *ContentService) UpdateCourse(ctx context.Context, actorID, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Type = models.CourseType(req.Type)
	course.Content = req.Content
	course.Position = req.Position
	course.LectureMinutes = req.LectureMinutes

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.WithTx(tx).Update(ctx, course); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, course.ID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionUpdate, entityCourse, course.ID, course.Title)
	})
	if err != nil {
		return nil, err
	}

	// Reload for the recomputed duration.
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse deletes a course and refreshes the durations above it
func (s *ContentService) DeleteCourse(ctx context.Context, actorID, id int64) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := s.cascadeFromChapter(ctx, tx, course.ChapterID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionDelete, entityCourse, id, course.Title)
	})
}

// --- Exercises ---

// CreateExercise adds an exercise to a course
func (s *ContentService) CreateExercise(ctx context.Context, actorID int64, req *dto.CreateExerciseRequest) (*models.Exercise, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	exercise := &models.Exercise{
		CourseID:         req.CourseID,
		Title:            req.Title,
		Instructions:     req.Instructions,
		EstimatedMinutes: req.EstimatedMinutes,
		MaxPoints:        req.MaxPoints,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.exerciseRepo.WithTx(tx).Create(ctx, exercise); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, exercise.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionCreate, entityExercise, exercise.ID, exercise.Title)
	})
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

// UpdateExercise updates an exercise. An estimated-time change ripples up.
func (s *ContentService) UpdateExercise(ctx context.Context, actorID, id int64, req *dto.UpdateExerciseRequest) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exercise.Title = req.Title
	exercise.Instructions = req.Instructions
	exercise.EstimatedMinutes = req.EstimatedMinutes
	exercise.MaxPoints = req.MaxPoints

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.exerciseRepo.WithTx(tx).Update(ctx, exercise); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, exercise.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionUpdate, entityExercise, exercise.ID, exercise.Title)
	})
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise deletes an exercise and refreshes the durations above it
func (s *ContentService) DeleteExercise(ctx context.Context, actorID, id int64) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.exerciseRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, exercise.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionDelete, entityExercise, id, exercise.Title)
	})
}

// --- QCMs ---

// CreateQCM adds a questionnaire to a course
func (s *ContentService) CreateQCM(ctx context.Context, actorID int64, req *dto.CreateQCMRequest) (*models.QCM, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	qcm := &models.QCM{
		CourseID:         req.CourseID,
		Title:            req.Title,
		QuestionCount:    req.QuestionCount,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassScore:        req.PassScore,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.qcmRepo.WithTx(tx).Create(ctx, qcm); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, qcm.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionCreate, entityQCM, qcm.ID, qcm.Title)
	})
	if err != nil {
		return nil, err
	}
	return qcm, nil
}

// UpdateQCM updates a questionnaire. A time-limit change ripples up.
func (s *ContentService) UpdateQCM(ctx context.Context, actorID, id int64, req *dto.UpdateQCMRequest) (*models.QCM, error) {
	qcm, err := s.qcmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	qcm.Title = req.Title
	qcm.QuestionCount = req.QuestionCount
	qcm.TimeLimitMinutes = req.TimeLimitMinutes
	qcm.PassScore = req.PassScore

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.qcmRepo.WithTx(tx).Update(ctx, qcm); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, qcm.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionUpdate, entityQCM, qcm.ID, qcm.Title)
	})
	if err != nil {
		return nil, err
	}
	return qcm, nil
}

// DeleteQCM deletes a questionnaire and refreshes the durations above it
func (s *ContentService) DeleteQCM(ctx context.Context, actorID, id int64) error {
	qcm, err := s.qcmRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.qcmRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if err := s.cascadeFromCourse(ctx, tx, qcm.CourseID); err != nil {
			return err
		}
		return s.audit.RecordTx(ctx, s.auditRepo.WithTx(tx), actorID, models.AuditActionDelete, entityQCM, id, qcm.Title)
	})
}
