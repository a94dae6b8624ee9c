package handlers

import (
	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/middleware"
	"github.com/boardhub/board-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service   *services.CommentService
	validator *Validator
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService, validator *Validator) *CommentHandler {
	return &CommentHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the comment routes. All of them need auth and run inside tx.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth, tx fiber.Handler) {
	commentRoutes := router.Group("/comments", auth, tx)
	commentRoutes.Post("/", h.HandleCreateComment)
	commentRoutes.Patch("/:id", h.HandleUpdateComment)
	commentRoutes.Delete("/:id", h.HandleDeleteComment)
}

// actorID is the id of the authenticated caller.
func actorID(c *fiber.Ctx) (uint64, error) {
	p, ok := middleware.PrincipalFrom(c.UserContext())
	if !ok {
		return 0, apperror.NewUnauthorized(services.MsgAuthorizationFailed, nil)
	}
	return p.ID, nil
}

func (h *CommentHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.service.CreateComment(c.UserContext(), uint64(req.BoardID), uint64(req.UserID), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) HandleUpdateComment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.service.UpdateComment(c.UserContext(), id, uint64(req.UserID), actor, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *CommentHandler) HandleDeleteComment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req DeleteCommentRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteComment(c.UserContext(), id, uint64(req.UserID), actor); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
