// Package server assembles the Fiber application: repositories, services,
// handlers and the middleware around them.
package server

import (
	"context"
	"time"

	"github.com/boardhub/board-api/internal/config"
	"github.com/boardhub/board-api/internal/database"
	"github.com/boardhub/board-api/internal/handlers"
	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/middleware"
	"github.com/boardhub/board-api/internal/repositories"
	"github.com/boardhub/board-api/internal/services"
	"github.com/boardhub/board-api/internal/transaction"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// New wires the application on top of an open database. Events go to publisher;
// a nil publisher drops them.
func New(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) *fiber.App {
	// --- Repositories ---
	gateway := database.NewGateway(db)
	base := repositories.NewBase(gateway)
	userRepo := repositories.NewGORMUserRepository(base)
	boardRepo := repositories.NewGORMBoardRepository(base)
	commentRepo := repositories.NewGORMCommentRepository(base)

	// --- Services ---
	guard := services.NewGuard(userRepo, boardRepo, commentRepo)
	notifier := services.NewNotifier(publisher)
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	userService := services.NewUserService(userRepo, guard, authService, notifier)
	boardService := services.NewBoardService(boardRepo, commentRepo, guard, notifier)
	commentService := services.NewCommentService(commentRepo, guard, notifier)

	// --- Handlers ---
	validator := handlers.NewValidator()
	userHandler := handlers.NewUserHandler(userService, validator, authService.TokenDuration())
	boardHandler := handlers.NewBoardHandler(boardService, validator)
	commentHandler := handlers.NewCommentHandler(commentService, validator)

	app := fiber.New(fiber.Config{
		AppName:               "board-api",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: logger.Writer(),
	}))

	auth := middleware.AuthRequired(userService)
	tx := middleware.Transactional(transaction.NewCoordinator(gateway))

	userHandler.RegisterRoutes(app, tx)
	boardHandler.RegisterRoutes(app, auth, tx)
	commentHandler.RegisterRoutes(app, auth, tx)

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			logger.Warningf("health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
