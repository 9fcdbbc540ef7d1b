package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/app/repositories"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

// AuditService records admin mutations into the audit trail and serves the
// trail back to auditors. Recording failures are logged but never fail the
// underlying operation.
type AuditService struct {
	auditRepo *repositories.AuditLogRepository
	logger    zerolog.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo *repositories.AuditLogRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, logger: logger}
}

// Record appends an audit entry for an admin action
func (s *AuditService) Record(ctx context.Context, actorID int64, action, entityType string, entityID int64, detail string) {
	entry := &models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Int64("actorID", actorID).
			Str("action", action).
			Str("entityType", entityType).
			Int64("entityID", entityID).
			Msg("Failed to record audit entry")
	}
}

// RecordTx appends an audit entry inside a caller-managed transaction, so the
// entry commits or rolls back together with the mutation it describes.
func (s *AuditService) RecordTx(ctx context.Context, repo *repositories.AuditLogRepository, actorID int64, action, entityType string, entityID int64, detail string) error {
	entry := &models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	if err := repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// List retrieves a page of the audit trail
func (s *AuditService) List(ctx context.Context, filter dto.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)

	entries, total, err := s.auditRepo.List(ctx, filter.EntityType, filter.EntityID, filter.ActorID, filter.Action, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:       entries,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}
