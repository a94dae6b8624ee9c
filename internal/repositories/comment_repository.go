package repositories

import (
	"context"

	"github.com/boardhub/board-api/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	FindOneByID(ctx context.Context, id uint64) (*models.Comment, error)
	FindByBoardID(ctx context.Context, boardID uint64) ([]models.Comment, error)
	SoftDelete(ctx context.Context, id uint64) error
	SoftDeleteByBoardID(ctx context.Context, boardID uint64) (int64, error)
	HardRemove(ctx context.Context, id uint64) error
}
