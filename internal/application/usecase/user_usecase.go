package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/auth"
	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// Actor the authenticated caller of a use case.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor holds admin or super_admin.
func (a Actor) IsAdmin() bool { return entity.IsAdminRole(a.Role) }

// UserUseCase administrative user management.
type UserUseCase struct {
	repo  repository.UserRepository
	audit ports.Auditor
}

// NewUserUseCase builds the use case.
func NewUserUseCase(repo repository.UserRepository, audit ports.Auditor) *UserUseCase {
	return &UserUseCase{repo: repo, audit: audit}
}

// List returns users filtered by role, status and a free-text search.
func (uc *UserUseCase) List(ctx context.Context, role, status, search string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, total, err := uc.repo.List(ctx, repository.UserFilter{
		Role:   role,
		Status: status,
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(users)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, u := range users {
		out.Items = append(out.Items, *auth.ToUserResponse(u))
	}
	return out, nil
}

// ChangeRole sets a new role on the target user.
// Only super_admin may grant or revoke admin roles, and nobody changes their own role.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor Actor, targetID, role string) (*dto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be teacher, admin or super_admin", domain.ErrInvalidInput)
	}
	if actor.UserID == targetID {
		return nil, fmt.Errorf("%w: cannot change your own role", domain.ErrForbidden)
	}
	if !domain.ValidID(targetID) {
		return nil, domain.ErrNotFound
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	touchesAdmin := entity.IsAdminRole(role) || user.IsAdmin()
	if touchesAdmin && actor.Role != entity.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only super_admin can grant or revoke admin roles", domain.ErrForbidden)
	}
	if user.Role == role {
		return auth.ToUserResponse(user), nil
	}

	previous := user.Role
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditRoleChange, EntityType: "user", EntityID: user.ID,
		Details: map[string]any{"from": previous, "to": role},
	})
	return auth.ToUserResponse(user), nil
}

// ChangeStatus activates, deactivates or suspends an account. Accounts are never deleted.
func (uc *UserUseCase) ChangeStatus(ctx context.Context, actor Actor, targetID, status string) (*dto.UserResponse, error) {
	if !entity.ValidUserStatus(status) {
		return nil, fmt.Errorf("%w: status must be active, inactive or suspended", domain.ErrInvalidInput)
	}
	if actor.UserID == targetID {
		return nil, fmt.Errorf("%w: cannot change your own status", domain.ErrForbidden)
	}
	if !domain.ValidID(targetID) {
		return nil, domain.ErrNotFound
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.IsAdmin() && actor.Role != entity.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only super_admin can change an admin account", domain.ErrForbidden)
	}

	previous := user.Status
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditStatusChange, EntityType: "user", EntityID: user.ID,
		Details: map[string]any{"from": previous, "to": status},
	})
	return auth.ToUserResponse(user), nil
}
