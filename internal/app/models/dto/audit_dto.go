package dto

import "github.com/eprofos/eprofos-api/internal/app/models"

// AuditLogFilter captures audit trail filters
type AuditLogFilter struct {
	ActorID    int64
	EntityType string
	EntityID   int64
	Action     string
	Page       int
	Size       int
}

// AuditLogListResponse is the paginated audit trail
type AuditLogListResponse struct {
	Logs       []*models.AuditLog `json:"logs"`
	Pagination PaginationInfo     `json:"pagination"`
}
