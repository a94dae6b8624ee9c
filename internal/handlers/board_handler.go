package handlers

import (
	"github.com/boardhub/board-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BoardHandler handles HTTP requests for boards.
type BoardHandler struct {
	service   *services.BoardService
	validator *Validator
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(service *services.BoardService, validator *Validator) *BoardHandler {
	return &BoardHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the board routes. Reads are public; mutations
// need auth and run inside tx.
func (h *BoardHandler) RegisterRoutes(router fiber.Router, auth, tx fiber.Handler) {
	boardRoutes := router.Group("/boards")
	boardRoutes.Get("/", h.HandleListBoards)
	boardRoutes.Get("/:id", h.HandleGetBoard)
	boardRoutes.Post("/", auth, tx, h.HandleCreateBoard)
	boardRoutes.Patch("/:id", auth, tx, h.HandleUpdateBoard)
	boardRoutes.Delete("/:id", auth, tx, h.HandleDeleteBoard)
}

// HandleListBoards lists all boards, newest first.
func (h *BoardHandler) HandleListBoards(c *fiber.Ctx) error {
	boards, err := h.service.ListBoards(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(boards)
}

// HandleGetBoard returns one board with its comments.
func (h *BoardHandler) HandleGetBoard(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	board, err := h.service.GetBoard(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(board)
}

func (h *BoardHandler) HandleCreateBoard(c *fiber.Ctx) error {
	var req CreateBoardRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	board, err := h.service.CreateBoard(c.UserContext(), req.Nickname, req.Title, req.Content, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

func (h *BoardHandler) HandleUpdateBoard(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateBoardRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	board, err := h.service.UpdateBoard(c.UserContext(), id, req.Password, services.BoardChanges{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(board)
}

func (h *BoardHandler) HandleDeleteBoard(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req DeleteBoardRequest
	if err := h.validator.parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.DeleteBoard(c.UserContext(), id, req.Password); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
