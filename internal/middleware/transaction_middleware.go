package middleware

import (
	"context"

	"github.com/boardhub/board-api/internal/transaction"

	"github.com/gofiber/fiber/v2"
)

// Transactional runs the rest of the handler chain inside one unit of work.
// A handler error rolls it back and then reaches the app's error handler unchanged.
func Transactional(coordinator *transaction.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parent := c.UserContext()
		defer c.SetUserContext(parent)

		return coordinator.Run(parent, func(ctx context.Context) error {
			c.SetUserContext(ctx)
			return c.Next()
		})
	}
}
