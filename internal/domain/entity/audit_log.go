package entity

import "time"

// Audit actions.
const (
	AuditCreate       = "create"
	AuditUpdate       = "update"
	AuditDelete       = "delete"
	AuditUpload       = "upload"
	AuditApprove      = "approve"
	AuditDecline      = "decline"
	AuditRoleChange   = "role_change"
	AuditStatusChange = "status_change"
	AuditLogin        = "login"
)

// AuditLog an append-only record of a state-changing action.
type AuditLog struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
	IPAddress  string
	CreatedAt  time.Time
}
