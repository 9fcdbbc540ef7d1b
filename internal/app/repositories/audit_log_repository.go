package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/app/models"
)

// AuditLogRepository handles database operations for the audit trail
type AuditLogRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *AuditLogRepository) WithTx(tx pgx.Tx) *AuditLogRepository {
	return &AuditLogRepository{db: tx, sb: r.sb}
}

// Create appends an entry to the audit trail
func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Detail).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating audit log entry: %w", err)
	}
	return nil
}

// List retrieves audit entries filtered by entity type, entity id, action
// and actor, newest first, resolving the actor email.
func (r *AuditLogRepository) List(ctx context.Context, entityType string, entityID, actorID int64, action string, offset uint64, limit int) ([]*models.AuditLog, int64, error) {
	applyFilter := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if entityType != "" {
			q = q.Where(squirrel.Eq{"a.entity_type": entityType})
		}
		if entityID > 0 {
			q = q.Where(squirrel.Eq{"a.entity_id": entityID})
		}
		if actorID > 0 {
			q = q.Where(squirrel.Eq{"a.actor_id": actorID})
		}
		if action != "" {
			q = q.Where(squirrel.Eq{"a.action": action})
		}
		return q
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("audit_logs a")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build audit count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting audit log entries: %w", err)
	}

	listSQL, listArgs, err := applyFilter(
		r.sb.Select("a.id", "a.actor_id", "u.email", "a.action", "a.entity_type", "a.entity_id", "a.detail", "a.created_at").
			From("audit_logs a").
			Join("users u ON u.id = a.actor_id")).
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build audit list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing audit log entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		err := rows.Scan(&entry.ID, &entry.ActorID, &entry.ActorEmail, &entry.Action,
			&entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, &entry)
	}
	return entries, total, rows.Err()
}
