package repositories

import (
	"context"

	"github.com/boardhub/board-api/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id uint64) error
	HardRemoveByNickname(ctx context.Context, nickname string) error
}
