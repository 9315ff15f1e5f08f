package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/auth"
	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
	"github.com/jhoicas/elimu-hub/pkg/jwt"
)

const secret = "auth-test-secret"

type users struct {
	byID   map[string]*entity.User
	logins int
}

func (u *users) Create(_ context.Context, user *entity.User) error {
	cp := *user
	u.byID[user.ID] = &cp
	return nil
}

func (u *users) GetByID(_ context.Context, id string) (*entity.User, error) {
	if user, ok := u.byID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, nil
}

func (u *users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range u.byID {
		if strings.EqualFold(user.Email, email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (u *users) Update(_ context.Context, user *entity.User) error {
	if _, ok := u.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	u.byID[user.ID] = &cp
	return nil
}

func (u *users) RecordLogin(context.Context, string) error {
	u.logins++
	return nil
}

func (u *users) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

type auditLog struct{ entries []ports.AuditEntry }

func (a *auditLog) Record(_ context.Context, e ports.AuditEntry) { a.entries = append(a.entries, e) }

func newUseCase() (*auth.AuthUseCase, *users, *auditLog) {
	repo := &users{byID: map[string]*entity.User{}}
	audit := &auditLog{}
	return auth.NewAuthUseCase(repo, audit, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "elimu-hub"}), repo, audit
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "  Achieng@School.ac.ke ",
		Password: "mwalimu123",
		FullName: "Achieng Otieno",
		School:   "Kisumu Primary",
		Subjects: []string{"Mathematics", " ", "Science"},
	})
	require.NoError(t, err)
	return out
}

func TestRegister(t *testing.T) {
	uc, _, audit := newUseCase()
	ctx := context.Background()

	out := register(t, uc)
	assert.Equal(t, "achieng@school.ac.ke", out.Email)
	assert.Equal(t, entity.RoleTeacher, out.Role)
	assert.Equal(t, []string{"Mathematics", "Science"}, out.Subjects)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.AuditCreate, audit.entries[0].Action)

	// Case 1: same address in another case is a duplicate
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ACHIENG@school.ac.ke", Password: "another123", FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Case 2: input validation
	cases := []dto.RegisterRequest{
		{Email: "not-an-email", Password: "mwalimu123", FullName: "A"},
		{Email: "a@b.co", Password: "short", FullName: "A"},
		{Email: "a@b.co", Password: "mwalimu123", FullName: "  "},
	}
	for _, in := range cases {
		_, err := uc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in.Email)
	}
}

func TestLogin(t *testing.T) {
	uc, repo, _ := newUseCase()
	ctx := context.Background()
	user := register(t, uc)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ACHIENG@school.ac.ke", Password: "mwalimu123"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.logins)
	assert.Equal(t, 1, out.User.LoginCount)

	id, email, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "achieng@school.ac.ke", email)
	assert.Equal(t, entity.RoleTeacher, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "achieng@school.ac.ke", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@school.ac.ke", Password: "mwalimu123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// deactivated accounts keep their password but cannot sign in
	repo.byID[user.ID].Status = entity.UserStatusInactive
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "achieng@school.ac.ke", Password: "mwalimu123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	user := register(t, uc)

	county := " Kisumu "
	out, err := uc.UpdateProfile(ctx, user.ID, dto.UpdateProfileRequest{County: &county})
	require.NoError(t, err)
	assert.Equal(t, "Kisumu", out.County)
	assert.Equal(t, "Achieng Otieno", out.FullName)

	blank := ""
	_, err = uc.UpdateProfile(ctx, user.ID, dto.UpdateProfileRequest{FullName: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureSuperAdmin(t *testing.T) {
	uc, repo, _ := newUseCase()
	ctx := context.Background()

	out, created, err := uc.EnsureSuperAdmin(ctx, "admin@elimuhub.co.ke", "first-pass")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleSuperAdmin, out.Role)

	// a second run re-activates and re-keys the same account
	repo.byID[out.ID].Status = entity.UserStatusSuspended
	again, created, err := uc.EnsureSuperAdmin(ctx, "admin@elimuhub.co.ke", "second-pass")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, out.ID, again.ID)
	assert.Len(t, repo.byID, 1)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@elimuhub.co.ke", Password: "second-pass"})
	require.NoError(t, err)

	_, _, err = uc.EnsureSuperAdmin(ctx, "admin@elimuhub.co.ke", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
