package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
	"github.com/jhoicas/elimu-hub/pkg/jwt"
)

// MinPasswordLength minimum accepted password length.
const MinPasswordLength = 8

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration, login and profile management.
type AuthUseCase struct {
	userRepo repository.UserRepository
	audit    ports.Auditor
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, audit ports.Auditor, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, audit: audit, jwtCfg: jwtCfg}
}

// Register creates a teacher account. Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         entity.RoleTeacher,
		Status:       entity.UserStatusActive,
		School:       strings.TrimSpace(in.School),
		County:       strings.TrimSpace(in.County),
		Subjects:     cleanList(in.Subjects),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: user.ID, Action: entity.AuditCreate, EntityType: "user", EntityID: user.ID,
		Details: map[string]any{"email": user.Email, "self_registration": true},
	})
	return ToUserResponse(user), nil
}

// Login checks email/password, issues a JWT and records the login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.RecordLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLogin = &now
	user.LoginCount++
	uc.audit.Record(ctx, ports.AuditEntry{UserID: user.ID, Action: entity.AuditLogin, EntityType: "user", EntityID: user.ID})
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Me returns the profile of the authenticated user.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile edits full name, school, county and subjects.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full_name cannot be empty", domain.ErrInvalidInput)
		}
		user.FullName = name
	}
	if in.School != nil {
		user.School = strings.TrimSpace(*in.School)
	}
	if in.County != nil {
		user.County = strings.TrimSpace(*in.County)
	}
	if in.Subjects != nil {
		user.Subjects = cleanList(in.Subjects)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{UserID: userID, Action: entity.AuditUpdate, EntityType: "user", EntityID: userID})
	return ToUserResponse(user), nil
}

// EnsureSuperAdmin creates the bootstrap super admin, or re-activates and re-keys it when it exists.
func (uc *AuthUseCase) EnsureSuperAdmin(ctx context.Context, email, password string) (*dto.UserResponse, bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}
	if len(password) < MinPasswordLength {
		return nil, false, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		user.PasswordHash = string(hash)
		user.Role = entity.RoleSuperAdmin
		user.Status = entity.UserStatusActive
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return ToUserResponse(user), false, nil
	}

	user = &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "System Administrator",
		Role:         entity.RoleSuperAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return ToUserResponse(user), true, nil
}

// ToUserResponse maps a user to its public shape.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Status:     u.Status,
		School:     u.School,
		County:     u.County,
		Subjects:   subjects,
		LastLogin:  u.LastLogin,
		LoginCount: u.LoginCount,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	return email, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
