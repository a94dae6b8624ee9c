package handlers

import (
	"time"

	"github.com/boardhub/board-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

const accessTokenCookie = "accessToken"

// UserHandler handles HTTP requests for sign-up and sign-in.
type UserHandler struct {
	userService *services.UserService
	validator   *Validator
	cookieTTL   time.Duration
}

// NewUserHandler creates a new UserHandler. cookieTTL is the lifetime of the
// accessToken cookie set on sign-in.
func NewUserHandler(userService *services.UserService, validator *Validator, cookieTTL time.Duration) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		cookieTTL:   cookieTTL,
	}
}

// RegisterRoutes registers the user routes. Sign-up runs inside tx.
func (h *UserHandler) RegisterRoutes(router fiber.Router, tx fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/sign-up", tx, h.HandleSignUp)
	userRoutes.Post("/sign-in", h.HandleSignIn)
}

// HandleSignUp handles new user registration.
func (h *UserHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.CreateNewUser(c.UserContext(), req.Nickname, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleSignIn checks the credentials and hands out an access token, both in
// the body and as an HTTP-only cookie.
func (h *UserHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}

	token, err := h.userService.LoginUser(c.UserContext(), req.Nickname, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		MaxAge:   int(h.cookieTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(AccessTokenResponse{AccessToken: token})
}
