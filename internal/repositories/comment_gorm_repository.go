package repositories

import (
	"context"
	"fmt"

	"github.com/boardhub/board-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	Base
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(base Base) *GORMCommentRepository {
	return &GORMCommentRepository{Base: base}
}

// Create inserts a comment linked through UserID and BoardID.
func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update rewrites the content of a live comment. Author and board never change.
func (r *GORMCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	res := r.conn(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d: %w", comment.ID, ErrNotFound)
	}
	return nil
}

// FindOneByID retrieves a live comment by ID.
func (r *GORMCommentRepository) FindOneByID(ctx context.Context, id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.conn(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("comment with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %d: %w", id, err)
	}
	return &comment, nil
}

// FindByBoardID lists the live comments of a board with their authors, oldest first.
func (r *GORMCommentRepository) FindByBoardID(ctx context.Context, boardID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.conn(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("board_id = ?", boardID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments of board %d: %w", boardID, err)
	}
	return comments, nil
}

// SoftDelete marks the comment deleted.
func (r *GORMCommentRepository) SoftDelete(ctx context.Context, id uint64) error {
	res := r.conn(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// SoftDeleteByBoardID marks every live comment of a board deleted and reports how many were.
func (r *GORMCommentRepository) SoftDeleteByBoardID(ctx context.Context, boardID uint64) (int64, error) {
	res := r.conn(ctx).Where("board_id = ?", boardID).Delete(&models.Comment{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete comments of board %d: %w", boardID, res.Error)
	}
	return res.RowsAffected, nil
}

// HardRemove physically removes the comment row.
func (r *GORMCommentRepository) HardRemove(ctx context.Context, id uint64) error {
	if err := r.conn(ctx).Unscoped().Delete(&models.Comment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}
	return nil
}
