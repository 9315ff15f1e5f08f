package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// UserFilter optional criteria for listing users.
type UserFilter struct {
	Role   string
	Status string
	Search string // matches email or full name
	Limit  int
	Offset int
}

// UserRepository persistence port for User. Lookups return (nil, nil) when absent.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	RecordLogin(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
}
