package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by pools and transactions.
// Repositories run against the pool by default; WithTx rebinds them to a
// transaction so multi-table writes (duration cascade, publish swap) stay
// atomic.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups all repositories for dependency injection
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	FormationRepository     *FormationRepository
	ModuleRepository        *ModuleRepository
	ChapterRepository       *ChapterRepository
	CourseRepository        *CourseRepository
	ExerciseRepository      *ExerciseRepository
	QCMRepository           *QCMRepository
	SessionRepository       *SessionRepository
	RegistrationRepository  *RegistrationRepository
	CertificateRepository   *CertificateRepository
	NeedsAnalysisRepository *NeedsAnalysisRepository
	LegalDocumentRepository *LegalDocumentRepository
	AuditLogRepository      *AuditLogRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		FormationRepository:     NewFormationRepository(db),
		ModuleRepository:        NewModuleRepository(db),
		ChapterRepository:       NewChapterRepository(db),
		CourseRepository:        NewCourseRepository(db),
		ExerciseRepository:      NewExerciseRepository(db),
		QCMRepository:           NewQCMRepository(db),
		SessionRepository:       NewSessionRepository(db),
		RegistrationRepository:  NewRegistrationRepository(db),
		CertificateRepository:   NewCertificateRepository(db),
		NeedsAnalysisRepository: NewNeedsAnalysisRepository(db),
		LegalDocumentRepository: NewLegalDocumentRepository(db),
		AuditLogRepository:      NewAuditLogRepository(db),
	}
}
