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

// SchemeUseCase CRUD over schemes of work, scoped to their owner (admins see all).
type SchemeUseCase struct {
	repo  repository.SchemeRepository
	audit ports.Auditor
}

// NewSchemeUseCase builds the use case.
func NewSchemeUseCase(repo repository.SchemeRepository, audit ports.Auditor) *SchemeUseCase {
	return &SchemeUseCase{repo: repo, audit: audit}
}

// Create persists a scheme owned by the actor.
func (uc *SchemeUseCase) Create(ctx context.Context, actor Actor, in dto.SchemeRequest) (*dto.SchemeResponse, error) {
	s := SchemeFromRequest(in)
	if err := validateScheme(s); err != nil {
		return nil, err
	}
	now := time.Now()
	s.ID = uuid.New().String()
	s.CreatedBy = actor.UserID
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditCreate, EntityType: "scheme_of_work", EntityID: s.ID,
		Details: map[string]any{"title": s.Title, "weeks": s.Weeks, "ai_generated": s.AIGenerated},
	})
	return ToSchemeResponse(s), nil
}

// Get returns one scheme the actor may see.
func (uc *SchemeUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.SchemeResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToSchemeResponse(s), nil
}

// Load returns the entity itself, for export.
func (uc *SchemeUseCase) Load(ctx context.Context, actor Actor, id string) (*entity.SchemeOfWork, error) {
	return uc.load(ctx, actor, id)
}

// Update replaces the content of a scheme, keeping its identity and owner.
func (uc *SchemeUseCase) Update(ctx context.Context, actor Actor, id string, in dto.SchemeRequest) (*dto.SchemeResponse, error) {
	current, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s := SchemeFromRequest(in)
	if err := validateScheme(s); err != nil {
		return nil, err
	}
	s.ID = current.ID
	s.CreatedBy = current.CreatedBy
	s.CreatedAt = current.CreatedAt
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditUpdate, EntityType: "scheme_of_work", EntityID: s.ID,
		Details: map[string]any{"weeks": s.Weeks},
	})
	return ToSchemeResponse(s), nil
}

// Delete removes a scheme.
func (uc *SchemeUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, s.ID); err != nil {
		return err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditDelete, EntityType: "scheme_of_work", EntityID: s.ID,
		Details: map[string]any{"title": s.Title},
	})
	return nil
}

// List returns the actor's schemes, or everybody's for admins.
func (uc *SchemeUseCase) List(ctx context.Context, actor Actor, q dto.PlanListQuery) (*dto.SchemeListResponse, error) {
	q.DefaultPage()
	f := repository.PlanFilter{Subject: q.Subject, Grade: q.Grade, Term: q.Term, Limit: q.Limit, Offset: q.Offset}
	if !actor.IsAdmin() {
		f.OwnerID = actor.UserID
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.SchemeListResponse{
		Items: make([]dto.SchemeResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, s := range list {
		out.Items = append(out.Items, *ToSchemeResponse(s))
	}
	return out, nil
}

func (uc *SchemeUseCase) load(ctx context.Context, actor Actor, id string) (*entity.SchemeOfWork, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CreatedBy != actor.UserID && !actor.IsAdmin() {
		// Other teachers' schemes are reported as missing.
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func validateScheme(s *entity.SchemeOfWork) error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if s.Subject == "" || s.Grade == "" {
		return fmt.Errorf("%w: subject and grade are required", domain.ErrInvalidInput)
	}
	if s.TemplateID != "" && !domain.ValidID(s.TemplateID) {
		return fmt.Errorf("%w: templateId is not a valid id", domain.ErrInvalidInput)
	}
	for i, w := range s.WeeklyPlans {
		if w.Topic == "" {
			return fmt.Errorf("%w: week %d has no topic", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}
