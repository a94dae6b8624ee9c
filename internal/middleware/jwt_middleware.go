package middleware

import (
	"context"
	"strings"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/models"

	"github.com/gofiber/fiber/v2"
)

const msgAuthorizationFailed = "authorization failed"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID       uint64
	Nickname string
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the authenticated caller stored by AuthRequired.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// The token's user must still exist under the nickname it was issued for.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.NewUnauthorized(msgAuthorizationFailed, nil)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apperror.NewUnauthorized(msgAuthorizationFailed, nil)
		}

		user, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			logger.Debugf("JWT validation failed: %v", err)
			return err
		}

		c.SetUserContext(WithPrincipal(c.UserContext(), Principal{ID: user.ID, Nickname: user.Nickname}))
		return c.Next()
	}
}
