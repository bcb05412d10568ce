package middleware

import (
	"context"
	"strings"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"
	"expert-test/internal/rbac"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "

	// Keys for the resolved identity in fiber.Ctx locals.
	UserIDKey = "userID"
	EmailKey  = "email"
	RoleKey   = "role"

	tokenTypeAccess = "access"
)

// TokenValidator resolves a bearer token to its claims. service.AuthService
// implements it.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token and stores user ID, email and role in the context.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Access token required")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Access token required")
		}

		claims, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		if claims.TokenType != tokenTypeAccess {
			return domain.NewUnauthorizedError("Invalid token type")
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(EmailKey, claims.Email)
		c.Locals(RoleKey, claims.Role)

		return c.Next()
	}
}

// RequirePermission is the single capability check of the API. It runs after
// Protected and rejects callers whose role lacks perm.
func RequirePermission(checker *rbac.Checker, perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		if role == "" || !checker.Has(role, perm) {
			logger.Get().Info("Permission denied",
				zap.String("role", role),
				zap.String("permission", perm),
				zap.String("path", c.Path()),
			)
			return domain.NewForbiddenError("Insufficient permissions")
		}
		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user ID set by Protected.
func UserIDFromCtx(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(UserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, domain.NewUnauthorizedError("Authentication required")
	}
	return id, nil
}

// IdentityFromCtx returns the full identity set by Protected.
func IdentityFromCtx(c *fiber.Ctx) (dto.Identity, error) {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return dto.Identity{}, err
	}
	email, _ := c.Locals(EmailKey).(string)
	role, _ := c.Locals(RoleKey).(string)
	return dto.Identity{ID: id, Email: email, Role: role}, nil
}
