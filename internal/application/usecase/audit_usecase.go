package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

var _ ports.Auditor = (*AuditUseCase)(nil)

// AuditUseCase writes and lists audit entries.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase builds the use case.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Record persists the entry. A failed write is logged and swallowed.
func (uc *AuditUseCase) Record(ctx context.Context, e ports.AuditEntry) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		IPAddress:  ports.ClientIP(ctx),
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", e.Action).
			Str("entity_type", e.EntityType).
			Str("entity_id", e.EntityID).
			Msg("audit: could not record entry")
	}
}

// List returns audit entries, newest first.
func (uc *AuditUseCase) List(ctx context.Context, f repository.AuditFilter) (*dto.AuditLogListResponse, error) {
	if f.UserID != "" && !domain.ValidID(f.UserID) {
		return nil, fmt.Errorf("%w: user_id is not a valid id", domain.ErrInvalidInput)
	}
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	logs, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.AuditLogListResponse{
		Items: make([]dto.AuditLogDTO, 0, len(logs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, l := range logs {
		out.Items = append(out.Items, dto.AuditLogDTO{
			ID:         l.ID,
			UserID:     l.UserID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Details:    l.Details,
			IPAddress:  l.IPAddress,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out, nil
}
