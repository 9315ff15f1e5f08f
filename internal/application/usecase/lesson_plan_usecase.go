package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// LessonPlanUseCase CRUD over lesson plans, scoped like schemes.
type LessonPlanUseCase struct {
	repo  repository.LessonPlanRepository
	audit ports.Auditor
}

// NewLessonPlanUseCase builds the use case.
func NewLessonPlanUseCase(repo repository.LessonPlanRepository, audit ports.Auditor) *LessonPlanUseCase {
	return &LessonPlanUseCase{repo: repo, audit: audit}
}

func (uc *LessonPlanUseCase) Create(ctx context.Context, actor Actor, in dto.LessonPlanRequest) (*dto.LessonPlanResponse, error) {
	p := LessonPlanFromRequest(in)
	if err := validateLessonPlan(p); err != nil {
		return nil, err
	}
	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedBy = actor.UserID
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditCreate, EntityType: "lesson_plan", EntityID: p.ID,
		Details: map[string]any{"title": p.Title, "ai_generated": p.AIGenerated},
	})
	return ToLessonPlanResponse(p), nil
}

func (uc *LessonPlanUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.LessonPlanResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToLessonPlanResponse(p), nil
}

func (uc *LessonPlanUseCase) Update(ctx context.Context, actor Actor, id string, in dto.LessonPlanRequest) (*dto.LessonPlanResponse, error) {
	current, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p := LessonPlanFromRequest(in)
	if err := validateLessonPlan(p); err != nil {
		return nil, err
	}
	p.ID = current.ID
	p.CreatedBy = current.CreatedBy
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{UserID: actor.UserID, Action: entity.AuditUpdate, EntityType: "lesson_plan", EntityID: p.ID})
	return ToLessonPlanResponse(p), nil
}

func (uc *LessonPlanUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditDelete, EntityType: "lesson_plan", EntityID: p.ID,
		Details: map[string]any{"title": p.Title},
	})
	return nil
}

func (uc *LessonPlanUseCase) List(ctx context.Context, actor Actor, q dto.PlanListQuery) (*dto.LessonPlanListResponse, error) {
	q.DefaultPage()
	f := repository.PlanFilter{Subject: q.Subject, Grade: q.Grade, Limit: q.Limit, Offset: q.Offset}
	if !actor.IsAdmin() {
		f.OwnerID = actor.UserID
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.LessonPlanListResponse{
		Items: make([]dto.LessonPlanResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, p := range list {
		out.Items = append(out.Items, *ToLessonPlanResponse(p))
	}
	return out, nil
}

func (uc *LessonPlanUseCase) load(ctx context.Context, actor Actor, id string) (*entity.LessonPlan, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (p.CreatedBy != actor.UserID && !actor.IsAdmin()) {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func validateLessonPlan(p *entity.LessonPlan) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if p.Subject == "" || p.Grade == "" {
		return fmt.Errorf("%w: subject and grade are required", domain.ErrInvalidInput)
	}
	if p.SchemeID != "" && !domain.ValidID(p.SchemeID) {
		return fmt.Errorf("%w: schemeId is not a valid id", domain.ErrInvalidInput)
	}
	return nil
}
