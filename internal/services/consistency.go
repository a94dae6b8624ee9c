package services

import (
	"context"
	"errors"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/repositories"
)

// Guard holds the existence and ownership checks that run before any mutation.
// Board ownership is possession of the board password; comment ownership is
// the authenticated identity of the author.
type Guard struct {
	userRepo    repositories.UserRepository
	boardRepo   repositories.BoardRepository
	commentRepo repositories.CommentRepository
}

func NewGuard(userRepo repositories.UserRepository, boardRepo repositories.BoardRepository, commentRepo repositories.CommentRepository) *Guard {
	return &Guard{userRepo: userRepo, boardRepo: boardRepo, commentRepo: commentRepo}
}

// notFoundAs turns a repository miss into a NotFound with msg and passes other errors through.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.New(apperror.NotFoundError, msg, err)
	}
	return err
}

// EnsureNicknameAvailable fails with Conflict when a live user already has the nickname.
func (g *Guard) EnsureNicknameAvailable(ctx context.Context, nickname string) error {
	_, err := g.userRepo.FindByNickname(ctx, nickname)
	switch {
	case err == nil:
		return apperror.NewConflict(MsgUserAlreadyExists)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (g *Guard) RequireUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := g.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, MsgUserNotFound)
	}
	return user, nil
}

func (g *Guard) RequireUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	user, err := g.userRepo.FindByNickname(ctx, nickname)
	if err != nil {
		return nil, notFoundAs(err, MsgUserNotFound)
	}
	return user, nil
}

func (g *Guard) RequireBoard(ctx context.Context, id uint64) (*models.Board, error) {
	board, err := g.boardRepo.FindOneByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, MsgBoardNotFound)
	}
	return board, nil
}

// ConfirmBoardPassword loads the board and checks the supplied password
// against the stored one. Missing boards fail with NotFound and mismatches
// with BadRequest.
func (g *Guard) ConfirmBoardPassword(ctx context.Context, boardID uint64, password string) (*models.Board, error) {
	board, err := g.RequireBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board.Password != password {
		return nil, apperror.NewBadRequest(MsgBoardPasswordMismatch)
	}
	return board, nil
}

// ConfirmCommentAuthor checks, in this order, that the user exists, that it
// is the authenticated actor, that the comment exists and that the user wrote it.
func (g *Guard) ConfirmCommentAuthor(ctx context.Context, commentID, userID, actorID uint64) (*models.User, *models.Comment, error) {
	user, err := g.RequireUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.ID != actorID {
		return nil, nil, apperror.NewBadRequest(MsgInvalidCommentAuthor)
	}

	comment, err := g.commentRepo.FindOneByID(ctx, commentID)
	if err != nil {
		return nil, nil, notFoundAs(err, MsgCommentNotFound)
	}
	if comment.UserID != user.ID {
		return nil, nil, apperror.NewBadRequest(MsgInvalidCommentAuthor)
	}
	return user, comment, nil
}
