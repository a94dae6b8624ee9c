package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardhub/board-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	Base
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(base Base) *GORMUserRepository {
	return &GORMUserRepository{Base: base}
}

// FindByID retrieves a live user by ID.
func (r *GORMUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// FindByNickname retrieves a live user by nickname.
func (r *GORMUserRepository) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).First(&user, "nickname = ?", nickname).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user with nickname %s: %w", nickname, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by nickname %s: %w", nickname, err)
	}
	return &user, nil
}

// Create inserts a new user and fills in its ID and CreatedAt.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user with nickname %s: %w", user.Nickname, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SoftDelete marks the user deleted.
func (r *GORMUserRepository) SoftDelete(ctx context.Context, id uint64) error {
	res := r.conn(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// HardRemoveByNickname physically removes every user row with the nickname,
// deleted or not. Used by cleanup paths only.
func (r *GORMUserRepository) HardRemoveByNickname(ctx context.Context, nickname string) error {
	if err := r.conn(ctx).Unscoped().Delete(&models.User{}, "nickname = ?", nickname).Error; err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}
