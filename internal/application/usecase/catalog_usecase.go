package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// CBC grades run from pre-primary (0) to Grade 12.
const maxGrade = 12

// CatalogUseCase CBC subjects and the education levels super admins maintain.
type CatalogUseCase struct {
	repo  repository.CatalogRepository
	audit ports.Auditor
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(repo repository.CatalogRepository, audit ports.Auditor) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, audit: audit}
}

// Subjects lists subjects, optionally for a single education level code.
func (uc *CatalogUseCase) Subjects(ctx context.Context, educationLevel string) ([]dto.SubjectDTO, error) {
	subjects, err := uc.repo.ListSubjects(ctx, educationLevel)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectDTO, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, dto.SubjectDTO{
			ID:              s.ID,
			Name:            s.Name,
			NameSwahili:     s.NameSwahili,
			Code:            s.Code,
			EducationLevels: s.EducationLevels,
			Description:     s.Description,
		})
	}
	return out, nil
}

// EducationLevels lists the CBC stages ordered by grade. Deactivated levels are
// left out unless includeInactive is set.
func (uc *CatalogUseCase) EducationLevels(ctx context.Context, includeInactive bool) ([]dto.EducationLevelDTO, error) {
	levels, err := uc.repo.ListEducationLevels(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EducationLevelDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, toLevelDTO(l))
	}
	return out, nil
}

// CreateEducationLevel adds an active level. Super admin only.
func (uc *CatalogUseCase) CreateEducationLevel(ctx context.Context, actor Actor, in dto.EducationLevelRequest) (*dto.EducationLevelDTO, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	l, err := levelFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, l); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	l.Active = true
	l.CreatedBy = actor.UserID
	l.CreatedAt, l.UpdatedAt = now, now
	if err := uc.repo.CreateEducationLevel(ctx, l); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.AuditCreate, l)
	out := toLevelDTO(l)
	return &out, nil
}

// UpdateEducationLevel replaces the descriptive fields of a level; its active flag is kept.
func (uc *CatalogUseCase) UpdateEducationLevel(ctx context.Context, actor Actor, rawID string, in dto.EducationLevelRequest) (*dto.EducationLevelDTO, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	current, err := uc.loadLevel(ctx, rawID)
	if err != nil {
		return nil, err
	}
	l, err := levelFromRequest(in)
	if err != nil {
		return nil, err
	}
	l.ID = current.ID
	if err := uc.ensureUnique(ctx, l); err != nil {
		return nil, err
	}
	l.Active = current.Active
	l.CreatedBy = current.CreatedBy
	l.CreatedAt = current.CreatedAt
	l.UpdatedAt = time.Now().UTC()
	if err := uc.repo.UpdateEducationLevel(ctx, l); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.AuditUpdate, l)
	out := toLevelDTO(l)
	return &out, nil
}

// DeleteEducationLevel deactivates a level. A level still used by curriculum
// documents cannot be removed.
func (uc *CatalogUseCase) DeleteEducationLevel(ctx context.Context, actor Actor, rawID string) error {
	if actor.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	l, err := uc.loadLevel(ctx, rawID)
	if err != nil {
		return err
	}
	n, err := uc.repo.CountDocumentsAtLevel(ctx, l.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: education level %q is used by %d document(s)", domain.ErrConflict, l.Name, n)
	}
	if err := uc.repo.DeactivateEducationLevel(ctx, l.ID); err != nil {
		return err
	}
	uc.record(ctx, actor, entity.AuditDelete, l)
	return nil
}

func (uc *CatalogUseCase) loadLevel(ctx context.Context, rawID string) (*entity.EducationLevel, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return nil, domain.ErrNotFound
	}
	l, err := uc.repo.GetEducationLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// ensureUnique compares names and codes case-insensitively, inactive levels included.
func (uc *CatalogUseCase) ensureUnique(ctx context.Context, l *entity.EducationLevel) error {
	all, err := uc.repo.ListEducationLevels(ctx, true)
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ID == l.ID {
			continue
		}
		if strings.EqualFold(other.Name, l.Name) {
			return fmt.Errorf("%w: education level with name %q already exists", domain.ErrConflict, l.Name)
		}
		if strings.EqualFold(other.Code, l.Code) {
			return fmt.Errorf("%w: education level with code %q already exists", domain.ErrConflict, l.Code)
		}
	}
	return nil
}

func (uc *CatalogUseCase) record(ctx context.Context, actor Actor, action string, l *entity.EducationLevel) {
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: action, EntityType: "education_level", EntityID: strconv.Itoa(l.ID),
		Details: map[string]any{"name": l.Name, "code": l.Code},
	})
}

func levelFromRequest(in dto.EducationLevelRequest) (*entity.EducationLevel, error) {
	l := &entity.EducationLevel{
		Name:        strings.TrimSpace(in.Name),
		NameSwahili: strings.TrimSpace(in.NameSwahili),
		Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
		GradeFrom:   in.GradeFrom,
		GradeTo:     in.GradeTo,
		Description: strings.TrimSpace(in.Description),
	}
	switch {
	case l.Name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case l.Code == "":
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	case l.GradeFrom < 0 || l.GradeTo > maxGrade || l.GradeFrom > l.GradeTo:
		return nil, fmt.Errorf("%w: grades must satisfy 0 <= grade_from <= grade_to <= %d", domain.ErrInvalidInput, maxGrade)
	}
	return l, nil
}

func toLevelDTO(l *entity.EducationLevel) dto.EducationLevelDTO {
	return dto.EducationLevelDTO{
		ID:          l.ID,
		Name:        l.Name,
		NameSwahili: l.NameSwahili,
		Code:        l.Code,
		GradeFrom:   l.GradeFrom,
		GradeTo:     l.GradeTo,
		Description: l.Description,
		IsActive:    l.Active,
	}
}
