package repositories

import (
	"context"
	"fmt"

	"github.com/boardhub/board-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBoardRepository is a GORM implementation of BoardRepository.
type GORMBoardRepository struct {
	Base
}

// NewGORMBoardRepository creates a new instance of GORMBoardRepository.
func NewGORMBoardRepository(base Base) *GORMBoardRepository {
	return &GORMBoardRepository{Base: base}
}

// FindAll lists live boards with their author's nickname, newest first.
func (r *GORMBoardRepository) FindAll(ctx context.Context) ([]models.BoardSummary, error) {
	var summaries []models.BoardSummary
	err := r.conn(ctx).
		Model(&models.Board{}).
		Select("boards.id, boards.title, users.nickname AS author, boards.created_at").
		Joins("JOIN users ON users.id = boards.user_id").
		Order("boards.created_at DESC, boards.id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all boards: %w", err)
	}
	return summaries, nil
}

// FindOneByID loads a live board with its author and its live comments,
// oldest comment first, each with its author.
func (r *GORMBoardRepository) FindOneByID(ctx context.Context, id uint64) (*models.Board, error) {
	var board models.Board
	err := r.conn(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&board, "id = ?", id).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("board with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get board by ID %d: %w", id, err)
	}
	return &board, nil
}

// Create inserts a board. Only UserID links the author; the User field is not written.
func (r *GORMBoardRepository) Create(ctx context.Context, board *models.Board) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(board).Error; err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}

// Update writes the title, content and password of an existing live board.
func (r *GORMBoardRepository) Update(ctx context.Context, board *models.Board) error {
	res := r.conn(ctx).
		Model(&models.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]any{
			"title":    board.Title,
			"content":  board.Content,
			"password": board.Password,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("board with ID %d: %w", board.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete marks the board deleted.
func (r *GORMBoardRepository) SoftDelete(ctx context.Context, id uint64) error {
	res := r.conn(ctx).Delete(&models.Board{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("board with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// HardRemove physically removes the board row.
func (r *GORMBoardRepository) HardRemove(ctx context.Context, id uint64) error {
	if err := r.conn(ctx).Unscoped().Delete(&models.Board{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to remove board: %w", err)
	}
	return nil
}
