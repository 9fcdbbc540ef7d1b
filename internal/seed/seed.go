package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/eprofos/eprofos-api/internal/app/models"
	appRepos "github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/config"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/auth"
	"github.com/eprofos/eprofos-api/internal/pkg/validation"
)

// CreateDefaultData creates the default admin account, a demo catalog entry
// and the initial legal document drafts if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	formationRepo := appRepos.NewFormationRepository(dbPool)
	documentRepo := appRepos.NewLegalDocumentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := createDefaultAdmin(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := createDemoFormation(ctx, formationRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := createDefaultLegalDocuments(ctx, documentRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createDefaultAdmin(ctx context.Context, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	adminEmail := cfg.App.DefaultAdminEmail
	if adminEmail == "" {
		adminEmail = "admin@eprofos.fr"
	}

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default admin account")
		return err
	}
	if exists {
		return nil
	}

	password := cfg.App.DefaultAdminPassword
	if password == "" {
		password = "ChangeMe123!"
		lgr.Warn().Str("email", adminEmail).Msg("Default admin created with the built-in password, change it immediately")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:         adminEmail,
		Password:      hash,
		FirstName:     "EPROFOS",
		LastName:      "Admin",
		Role:          appModels.RoleAdmin,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return nil
}

func createDemoFormation(ctx context.Context, formationRepo *appRepos.FormationRepository, lgr zerolog.Logger) error {
	title := "Initiation au développement web"
	formation := &appModels.Formation{
		Title:         title,
		Slug:          validation.Slugify(title),
		Description:   "Découverte des bases du développement web: HTML, CSS et premiers pas en JavaScript.",
		Objectives:    "Construire une page web statique et comprendre la structure d'une application web moderne.",
		Prerequisites: "Aucun prérequis technique.",
		Category:      "Développement",
		Level:         appModels.LevelBeginner,
		PriceCents:    120000,
	}

	err := formationRepo.Create(ctx, formation)
	if errors.Is(err, apperrors.ErrSlugAlreadyExists) {
		return nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo formation")
		return err
	}

	lgr.Info().Str("slug", formation.Slug).Msg("Demo formation created")
	return nil
}

// The Qualiopi referential expects these documents to exist from day one, so
// empty drafts are seeded for each type.
func createDefaultLegalDocuments(ctx context.Context, documentRepo *appRepos.LegalDocumentRepository, lgr zerolog.Logger) error {
	titles := map[appModels.LegalDocumentType]string{
		appModels.DocInternalRegulation:      "Règlement intérieur",
		appModels.DocStudyRegulation:         "Règlement des études",
		appModels.DocTrainingTerms:           "Conditions générales de formation",
		appModels.DocAccessibilityPolicy:     "Politique d'accessibilité",
		appModels.DocAccessibilityProcedures: "Procédures d'accessibilité",
	}

	var finalErr error
	for docType, title := range titles {
		existing, _, err := documentRepo.List(ctx, string(docType), "", 0, 1)
		if err != nil {
			lgr.Error().Err(err).Str("type", string(docType)).Msg("Error checking legal documents")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if len(existing) > 0 {
			continue
		}

		doc := &appModels.LegalDocument{
			Type:    docType,
			Title:   title,
			Content: "Document en cours de rédaction (" + time.Now().Format("2006-01-02") + ").",
		}
		if err := documentRepo.Create(ctx, doc); err != nil {
			lgr.Error().Err(err).Str("type", string(docType)).Msg("Error creating legal document draft")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Legal document drafts verified")
	}
	return finalErr
}
