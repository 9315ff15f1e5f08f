package repository

import (
	"context"
	"time"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// AuditFilter criteria for listing audit entries.
type AuditFilter struct {
	UserID     string
	EntityType string
	Action     string
	Limit      int
	Offset     int
}

// AuditRepository append-only store of audit entries.
type AuditRepository interface {
	Create(ctx context.Context, l *entity.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]*entity.AuditLog, int, error)
}

// QueryLogRepository store of answered reference questions.
type QueryLogRepository interface {
	Create(ctx context.Context, l *entity.QueryLog) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}
