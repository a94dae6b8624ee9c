package services

import (
	"time"

	"github.com/boardhub/board-api/internal/models"
)

// The view types below list exactly the fields a response exposes.
// Passwords never appear in any of them.

type UserView struct {
	ID        uint64    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoardCreatedView struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoardListItem struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type BoardDetailView struct {
	ID        uint64        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    string        `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	Comments  []CommentView `json:"comments"`
}

type BoardUpdatedView struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

type CommentView struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentUpdatedView struct {
	ID      uint64 `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

func toUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Nickname: u.Nickname, CreatedAt: u.CreatedAt}
}

func toBoardCreatedView(b *models.Board, author string) BoardCreatedView {
	return BoardCreatedView{
		ID:        b.ID,
		Title:     b.Title,
		Author:    author,
		Content:   b.Content,
		CreatedAt: b.CreatedAt,
	}
}

func toBoardListItem(s models.BoardSummary) BoardListItem {
	return BoardListItem{ID: s.ID, Title: s.Title, Author: s.Author, CreatedAt: s.CreatedAt}
}

func toBoardDetailView(b *models.Board) BoardDetailView {
	comments := make([]CommentView, 0, len(b.Comments))
	for i := range b.Comments {
		comments = append(comments, toCommentView(&b.Comments[i], b.Comments[i].User.Nickname))
	}
	return BoardDetailView{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Author:    b.User.Nickname,
		CreatedAt: b.CreatedAt,
		Comments:  comments,
	}
}

func toBoardUpdatedView(b *models.Board) BoardUpdatedView {
	return BoardUpdatedView{ID: b.ID, Title: b.Title, Content: b.Content, Author: b.User.Nickname}
}

func toCommentView(c *models.Comment, author string) CommentView {
	return CommentView{ID: c.ID, Content: c.Content, Author: author, CreatedAt: c.CreatedAt}
}
