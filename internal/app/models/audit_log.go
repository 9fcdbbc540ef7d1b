package models

import "time"

// AuditLog records an admin mutation for the Qualiopi audit trail.
type AuditLog struct {
	ID         int64     `json:"id"`
	ActorID    int64     `json:"actorId"`
	ActorEmail string    `json:"actorEmail,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Audit actions
const (
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionDelete  = "DELETE"
	AuditActionStatus  = "STATUS_CHANGE"
	AuditActionSend    = "SEND"
	AuditActionIssue   = "ISSUE"
	AuditActionRevoke  = "REVOKE"
	AuditActionPublish = "PUBLISH"
	AuditActionArchive = "ARCHIVE"
	AuditActionExport  = "EXPORT"
)
