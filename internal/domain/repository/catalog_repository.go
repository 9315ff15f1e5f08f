package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// CatalogRepository subjects and the education levels super admins maintain.
type CatalogRepository interface {
	ListSubjects(ctx context.Context, educationLevel string) ([]*entity.Subject, error)
	ListEducationLevels(ctx context.Context, includeInactive bool) ([]*entity.EducationLevel, error)
	// GetEducationLevel returns (nil, nil) when the level does not exist.
	GetEducationLevel(ctx context.Context, id int) (*entity.EducationLevel, error)
	// CreateEducationLevel sets l.ID. A duplicate name or code is domain.ErrConflict.
	CreateEducationLevel(ctx context.Context, l *entity.EducationLevel) error
	UpdateEducationLevel(ctx context.Context, l *entity.EducationLevel) error
	DeactivateEducationLevel(ctx context.Context, id int) error
	// CountDocumentsAtLevel counts curriculum documents whose grade falls in the level.
	CountDocumentsAtLevel(ctx context.Context, id int) (int, error)
}
