package services

import (
	"context"
	"strings"

	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/repositories"
)

// CommentService handles business logic related to comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	guard       *Guard
	notifier    *Notifier
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, guard *Guard, notifier *Notifier) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		guard:       guard,
		notifier:    notifier,
	}
}

// commentContent substitutes the placeholder for blank content.
func commentContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return models.DefaultCommentContent
	}
	return content
}

// CreateComment attaches a comment by userID to the board.
func (s *CommentService) CreateComment(ctx context.Context, boardID, userID uint64, content string) (CommentView, error) {
	user, err := s.guard.RequireUser(ctx, userID)
	if err != nil {
		return CommentView{}, err
	}
	board, err := s.guard.RequireBoard(ctx, boardID)
	if err != nil {
		return CommentView{}, err
	}

	comment := &models.Comment{
		Content: commentContent(content),
		UserID:  user.ID,
		BoardID: board.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return CommentView{}, err
	}

	view := toCommentView(comment, user.Nickname)
	s.notifier.Notify(ctx, EventCommentCreated, view)
	return view, nil
}

// UpdateComment replaces the content of a comment written by userID.
// actorID is the authenticated caller.
func (s *CommentService) UpdateComment(ctx context.Context, id, userID, actorID uint64, content string) (CommentUpdatedView, error) {
	user, comment, err := s.guard.ConfirmCommentAuthor(ctx, id, userID, actorID)
	if err != nil {
		return CommentUpdatedView{}, err
	}

	comment.Content = commentContent(content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return CommentUpdatedView{}, err
	}

	view := CommentUpdatedView{ID: comment.ID, Author: user.Nickname, Content: comment.Content}
	s.notifier.Notify(ctx, EventCommentUpdated, view)
	return view, nil
}

// DeleteComment soft-deletes a comment written by userID.
func (s *CommentService) DeleteComment(ctx context.Context, id, userID, actorID uint64) error {
	if _, _, err := s.guard.ConfirmCommentAuthor(ctx, id, userID, actorID); err != nil {
		return err
	}
	if err := s.commentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, EventCommentDeleted, map[string]any{"id": id})
	return nil
}
