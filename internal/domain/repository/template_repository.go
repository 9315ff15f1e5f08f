package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// TemplateRepository persistence port for Template.
type TemplateRepository interface {
	Create(ctx context.Context, t *entity.Template) error
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	List(ctx context.Context, templateType string, limit, offset int) ([]*entity.Template, int, error)
	Delete(ctx context.Context, id string) error
}
