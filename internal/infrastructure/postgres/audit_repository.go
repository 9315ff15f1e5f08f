package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

var (
	_ repository.AuditRepository    = (*AuditRepo)(nil)
	_ repository.QueryLogRepository = (*QueryLogRepo)(nil)
)

// AuditRepo append-only audit trail.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, nullIfEmpty(l.UserID), l.Action, l.EntityType, l.EntityID, l.Details, l.IPAddress, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	var w whereBuilder
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.EntityType != "" {
		w.add("entity_type = ?", f.EntityType)
	}
	if f.Action != "" {
		w.add("action = ?", f.Action)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM audit_logs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}
	limit, offset := clampPage(f.Limit, f.Offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM audit_logs`+w.sql()+` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var userID *string
		if err := rows.Scan(&l.ID, &userID, &l.Action, &l.EntityType, &l.EntityID, &l.Details,
			&l.IPAddress, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		l.UserID = derefString(userID)
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// QueryLogRepo records answered reference questions.
type QueryLogRepo struct {
	q Querier
}

func NewQueryLogRepository(q Querier) *QueryLogRepo {
	return &QueryLogRepo{q: q}
}

func (r *QueryLogRepo) Create(ctx context.Context, l *entity.QueryLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO query_logs (id, user_id, query, filters, response, chunks_retrieved, processing_time_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, nullIfEmpty(l.UserID), l.Query, l.Filters, l.Response, l.ChunksRetrieved,
		l.ProcessingTimeMS, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}

func (r *QueryLogRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM query_logs WHERE created_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query logs: %w", err)
	}
	return n, nil
}
