package services

import (
	"context"

	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/repositories"
)

// BoardChanges carries the optional fields of a board update.
type BoardChanges struct {
	Title   *string
	Content *string
}

// BoardService handles business logic related to boards.
type BoardService struct {
	boardRepo   repositories.BoardRepository
	commentRepo repositories.CommentRepository
	guard       *Guard
	notifier    *Notifier
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repositories.BoardRepository, commentRepo repositories.CommentRepository, guard *Guard, notifier *Notifier) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		commentRepo: commentRepo,
		guard:       guard,
		notifier:    notifier,
	}
}

// CreateBoard posts a board authored by the user with the given nickname.
func (s *BoardService) CreateBoard(ctx context.Context, nickname, title, content, password string) (BoardCreatedView, error) {
	author, err := s.guard.RequireUserByNickname(ctx, nickname)
	if err != nil {
		return BoardCreatedView{}, err
	}

	board := &models.Board{
		Title:    title,
		Content:  content,
		Password: password,
		UserID:   author.ID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return BoardCreatedView{}, err
	}

	view := toBoardCreatedView(board, author.Nickname)
	s.notifier.Notify(ctx, EventBoardCreated, view)
	return view, nil
}

// ListBoards returns every live board, newest first.
func (s *BoardService) ListBoards(ctx context.Context) ([]BoardListItem, error) {
	summaries, err := s.boardRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]BoardListItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, toBoardListItem(summary))
	}
	return items, nil
}

// GetBoard returns a board with its comments, oldest comment first.
func (s *BoardService) GetBoard(ctx context.Context, id uint64) (BoardDetailView, error) {
	board, err := s.guard.RequireBoard(ctx, id)
	if err != nil {
		return BoardDetailView{}, err
	}
	return toBoardDetailView(board), nil
}

// UpdateBoard merges the supplied fields onto the board once the password
// matches. Fields left nil keep their stored value.
func (s *BoardService) UpdateBoard(ctx context.Context, id uint64, password string, changes BoardChanges) (BoardUpdatedView, error) {
	board, err := s.guard.ConfirmBoardPassword(ctx, id, password)
	if err != nil {
		return BoardUpdatedView{}, err
	}

	if changes.Title != nil {
		board.Title = *changes.Title
	}
	if changes.Content != nil {
		board.Content = *changes.Content
	}
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return BoardUpdatedView{}, err
	}

	view := toBoardUpdatedView(board)
	s.notifier.Notify(ctx, EventBoardUpdated, view)
	return view, nil
}

// DeleteBoard soft-deletes the board and its comments once the password matches.
func (s *BoardService) DeleteBoard(ctx context.Context, id uint64, password string) error {
	if _, err := s.guard.ConfirmBoardPassword(ctx, id, password); err != nil {
		return err
	}

	if err := s.boardRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	n, err := s.commentRepo.SoftDeleteByBoardID(ctx, id)
	if err != nil {
		return err
	}
	logger.Debugf("board %d deleted with %d comments", id, n)

	s.notifier.Notify(ctx, EventBoardDeleted, map[string]any{"id": id, "comments": n})
	return nil
}
