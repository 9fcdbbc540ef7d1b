package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eprofos/eprofos-api/docs" // generated swagger docs
	appControllers "github.com/eprofos/eprofos-api/internal/app/controllers"
	appMigrations "github.com/eprofos/eprofos-api/internal/app/migrations"
	appRepos "github.com/eprofos/eprofos-api/internal/app/repositories"
	appRoutes "github.com/eprofos/eprofos-api/internal/app/routes"
	appServices "github.com/eprofos/eprofos-api/internal/app/services"
	"github.com/eprofos/eprofos-api/internal/config"
	"github.com/eprofos/eprofos-api/internal/db"
	appMiddleware "github.com/eprofos/eprofos-api/internal/middleware"
	pkgAuth "github.com/eprofos/eprofos-api/internal/pkg/auth"
	"github.com/eprofos/eprofos-api/internal/pkg/email"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
	"github.com/eprofos/eprofos-api/internal/pkg/logger"
	"github.com/eprofos/eprofos-api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService *pkgAuth.JWTService
	Mailer     email.Service

	AuditService         *appServices.AuditService
	AuthService          *appServices.AuthService
	CatalogService       *appServices.CatalogService
	FormationService     *appServices.FormationService
	ContentService       *appServices.ContentService
	SessionService       *appServices.SessionService
	RegistrationService  *appServices.RegistrationService
	CertificateService   *appServices.CertificateService
	NeedsAnalysisService *appServices.NeedsAnalysisService
	LegalDocumentService *appServices.LegalDocumentService
	ExportService        *appServices.ExportService

	AuthController          *appControllers.AuthController
	CatalogController       *appControllers.CatalogController
	FormationController     *appControllers.FormationController
	ContentController       *appControllers.ContentController
	SessionController       *appControllers.SessionController
	RegistrationController  *appControllers.RegistrationController
	CertificateController   *appControllers.CertificateController
	NeedsAnalysisController *appControllers.NeedsAnalysisController
	LegalDocumentController *appControllers.LegalDocumentController
	MeController            *appControllers.MeController
	ExportController        *appControllers.ExportController
	AuditController         *appControllers.AuditController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.App.BaseURL,
	}, lgr)

	deps.AuditService = appServices.NewAuditService(deps.Repos.AuditLogRepository, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.Mailer,
		lgr,
	)

	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.FormationRepository,
		deps.Repos.ModuleRepository,
		deps.Repos.ChapterRepository,
		deps.Repos.CourseRepository,
		deps.Repos.ExerciseRepository,
		deps.Repos.QCMRepository,
		deps.Repos.SessionRepository,
		lgr,
	)

	deps.FormationService = appServices.NewFormationService(
		deps.Repos.FormationRepository,
		deps.CatalogService,
		deps.AuditService,
		lgr,
	)

	deps.ContentService = appServices.NewContentService(dbPool, deps.Repos, deps.AuditService, lgr)

	deps.SessionService = appServices.NewSessionService(
		deps.Repos.SessionRepository,
		deps.Repos.FormationRepository,
		deps.AuditService,
		lgr,
	)

	deps.RegistrationService = appServices.NewRegistrationService(
		dbPool,
		deps.Repos.SessionRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.AuditLogRepository,
		deps.AuditService,
		deps.Mailer,
		lgr,
	)

	deps.CertificateService = appServices.NewCertificateService(
		dbPool,
		deps.Repos.CertificateRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.AuditLogRepository,
		deps.AuditService,
		deps.Mailer,
		cfg.App.BaseURL,
		lgr,
	)

	deps.NeedsAnalysisService = appServices.NewNeedsAnalysisService(
		dbPool,
		deps.Repos.NeedsAnalysisRepository,
		deps.Repos.FormationRepository,
		deps.Repos.AuditLogRepository,
		deps.AuditService,
		deps.Mailer,
		cfg.App.NeedsAnalysisWindowDays,
		lgr,
	)

	deps.LegalDocumentService = appServices.NewLegalDocumentService(
		dbPool,
		deps.Repos.LegalDocumentRepository,
		deps.Repos.AuditLogRepository,
		deps.AuditService,
		lgr,
	)

	deps.ExportService = appServices.NewExportService(
		deps.Repos.SessionRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.FormationRepository,
		deps.AuditService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.FormationController = appControllers.NewFormationController(deps.FormationService)
	deps.ContentController = appControllers.NewContentController(deps.ContentService)
	deps.SessionController = appControllers.NewSessionController(deps.SessionService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.CertificateController = appControllers.NewCertificateController(deps.CertificateService)
	deps.NeedsAnalysisController = appControllers.NewNeedsAnalysisController(deps.NeedsAnalysisService)
	deps.LegalDocumentController = appControllers.NewLegalDocumentController(deps.LegalDocumentService)
	deps.MeController = appControllers.NewMeController(deps.AuthService, deps.RegistrationService, deps.CertificateService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)
	deps.AuditController = appControllers.NewAuditController(deps.AuditService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	if err := appMiddleware.RegisterCustomValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.FormationController,
		deps.ContentController,
		deps.SessionController,
		deps.RegistrationController,
		deps.CertificateController,
		deps.NeedsAnalysisController,
		deps.LegalDocumentController,
		deps.MeController,
		deps.ExportController,
		deps.AuditController,
		deps.AuthMiddleware,
	)

	return router
}
