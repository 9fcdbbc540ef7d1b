package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/pkg/csvexport"
)

// ExportService produces the CSV exports required for audit evidence:
// session attendance lists and the full catalog.
type ExportService struct {
	sessions      *repositories.SessionRepository
	regs          *repositories.RegistrationRepository
	formationRepo *repositories.FormationRepository
	audit         *AuditService
	logger        zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	sessions *repositories.SessionRepository,
	regs *repositories.RegistrationRepository,
	formationRepo *repositories.FormationRepository,
	audit *AuditService,
	logger zerolog.Logger,
) *ExportService {
	return &ExportService{
		sessions:      sessions,
		regs:          regs,
		formationRepo: formationRepo,
		audit:         audit,
		logger:        logger,
	}
}

// ExportSessionRegistrations renders every registration of a session as CSV
// and returns a filename derived from the session.
func (s *ExportService) ExportSessionRegistrations(ctx context.Context, actorID, sessionID int64) ([]byte, string, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	registrations, err := s.regs.ListAllBySession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := csvexport.WriteRegistrations(&buf, registrations); err != nil {
		return nil, "", err
	}

	s.audit.Record(ctx, actorID, models.AuditActionExport, entitySession, sessionID,
		fmt.Sprintf("%d registrations", len(registrations)))

	filename := fmt.Sprintf("registrations-session-%d-%s.csv", sessionID, session.StartDate.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportFormations renders the full catalog as CSV
func (s *ExportService) ExportFormations(ctx context.Context, actorID int64) ([]byte, string, error) {
	formations, err := s.formationRepo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := csvexport.WriteFormations(&buf, formations); err != nil {
		return nil, "", err
	}

	s.audit.Record(ctx, actorID, models.AuditActionExport, entityFormation, 0,
		fmt.Sprintf("%d formations", len(formations)))

	return buf.Bytes(), "formations.csv", nil
}
