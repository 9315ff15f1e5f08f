package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/pkg/jwt"
)

// Locals keys filled by AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// UserLookup reads the account a token was issued to. Returns (nil, nil) when it no longer exists.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware validates the Bearer JWT, then loads the account behind it: tokens of deleted
// accounts get 401 and inactive or suspended accounts get 403. The stored email and role, not
// the token claims, go into c.Locals, so role and status changes apply on the next request.
func AuthMiddleware(jwtSecret string, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("MISSING_TOKEN", "Authorization header is required"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("INVALID_TOKEN", "expected: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("MISSING_TOKEN", "empty token"))
		}
		userID, _, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || !domain.ValidID(userID) {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("INVALID_TOKEN", "invalid or expired token"))
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return writeError(c, err)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("INVALID_TOKEN", "account no longer exists"))
		}
		if user.Status != entity.UserStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(errBody("ACCOUNT_INACTIVE", "account is "+user.Status))
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole lets the request through only when the account role is one of roles.
// Must run after AuthMiddleware. An account without a role gets 401 MISSING_ROLE.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errBody("MISSING_ROLE", "account has no role"))
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(errBody("FORBIDDEN", "insufficient role"))
	}
}

// GetUserID returns the authenticated user id, or "" before AuthMiddleware.
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail returns the email of the authenticated account.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetRole returns the current role of the authenticated account.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func actor(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

func errBody(code, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Success: false, Code: code, Message: msg}
}
