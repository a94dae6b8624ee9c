package repositories

import (
	"context"

	"github.com/boardhub/board-api/internal/models"
)

// BoardRepository defines the interface for board data access.
type BoardRepository interface {
	FindAll(ctx context.Context) ([]models.BoardSummary, error)
	FindOneByID(ctx context.Context, id uint64) (*models.Board, error)
	Create(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	SoftDelete(ctx context.Context, id uint64) error
	HardRemove(ctx context.Context, id uint64) error
}
