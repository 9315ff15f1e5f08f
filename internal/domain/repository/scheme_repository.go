package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// PlanFilter criteria shared by scheme and lesson plan listings.
// OwnerID empty means "all owners" (admin view).
type PlanFilter struct {
	OwnerID string
	Subject string
	Grade   string
	Term    string
	Limit   int
	Offset  int
}

// SchemeRepository persistence port for SchemeOfWork.
type SchemeRepository interface {
	Create(ctx context.Context, s *entity.SchemeOfWork) error
	GetByID(ctx context.Context, id string) (*entity.SchemeOfWork, error)
	Update(ctx context.Context, s *entity.SchemeOfWork) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PlanFilter) ([]*entity.SchemeOfWork, int, error)
	Count(ctx context.Context) (int, error)
}

// LessonPlanRepository persistence port for LessonPlan.
type LessonPlanRepository interface {
	Create(ctx context.Context, p *entity.LessonPlan) error
	GetByID(ctx context.Context, id string) (*entity.LessonPlan, error)
	Update(ctx context.Context, p *entity.LessonPlan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PlanFilter) ([]*entity.LessonPlan, int, error)
	Count(ctx context.Context) (int, error)
}
