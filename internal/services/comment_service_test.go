package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	users     *MockUserRepository
	boards    *MockBoardRepository
	comments  *MockCommentRepository
	publisher *recordingPublisher
	service   *services.CommentService
}

func newCommentFixture() *commentFixture {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	comments := new(MockCommentRepository)
	publisher := &recordingPublisher{}
	guard := services.NewGuard(users, boards, comments)
	return &commentFixture{
		users:     users,
		boards:    boards,
		comments:  comments,
		publisher: publisher,
		service:   services.NewCommentService(comments, guard, services.NewNotifier(publisher)),
	}
}

func (f *commentFixture) assertNoWrites(t *testing.T) {
	t.Helper()
	f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.comments.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published())
}

func TestCommentService_CreateComment(t *testing.T) {
	cases := map[string]struct {
		content string
		want    string
	}{
		"kept":       {content: "nice post", want: "nice post"},
		"empty":      {content: "", want: models.DefaultCommentContent},
		"whitespace": {content: "   ", want: models.DefaultCommentContent},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newCommentFixture()
			ctx := context.Background()
			f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
			f.boards.On("FindOneByID", ctx, uint64(1)).Return(storedBoard(), nil).Once()
			f.comments.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
				return c.UserID == 3 && c.BoardID == 1 && c.Content == tc.want
			})).Run(func(args mock.Arguments) {
				c := args.Get(1).(*models.Comment)
				c.ID = 8
				c.CreatedAt = time.Now()
			}).Return(nil).Once()

			view, err := f.service.CreateComment(ctx, 1, 3, tc.content)
			require.NoError(t, err)
			assert.Equal(t, uint64(8), view.ID)
			assert.Equal(t, "reader", view.Author)
			assert.Equal(t, tc.want, view.Content)
			assert.Equal(t, []string{services.EventCommentCreated}, f.publisher.published())
			f.comments.AssertExpectations(t)
		})
	}
}

func TestCommentService_CreateCommentMissingParents(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, uint64(9)).Return(nil, notFoundErr("user")).Once()
	f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
	f.boards.On("FindOneByID", ctx, uint64(99)).Return(nil, notFoundErr("board")).Once()

	_, err := f.service.CreateComment(ctx, 1, 9, "hi")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, services.MsgUserNotFound, appErr.Message)

	_, err = f.service.CreateComment(ctx, 99, 3, "hi")
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, services.MsgBoardNotFound, appErr.Message)

	f.assertNoWrites(t)
}

func TestCommentService_UpdateComment(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
	f.comments.On("FindOneByID", ctx, uint64(8)).Return(&models.Comment{ID: 8, Content: "old", UserID: 3, BoardID: 1}, nil).Once()
	f.comments.On("Update", ctx, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ID == 8 && c.Content == models.DefaultCommentContent
	})).Return(nil).Once()

	view, err := f.service.UpdateComment(ctx, 8, 3, 3, "")
	require.NoError(t, err)
	assert.Equal(t, services.CommentUpdatedView{ID: 8, Author: "reader", Content: models.DefaultCommentContent}, view)
	assert.Equal(t, []string{services.EventCommentUpdated}, f.publisher.published())
	f.comments.AssertExpectations(t)
}

func TestCommentService_OwnershipChecksRunInOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user wins over everything", func(t *testing.T) {
		f := newCommentFixture()
		f.users.On("FindByID", ctx, uint64(9)).Return(nil, notFoundErr("user")).Once()

		_, err := f.service.UpdateComment(ctx, 404, 9, 3, "x")
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.NotFoundError, appErr.Type)
		assert.Equal(t, services.MsgUserNotFound, appErr.Message)
		f.comments.AssertNotCalled(t, "FindOneByID", mock.Anything, mock.Anything)
		f.assertNoWrites(t)
	})

	t.Run("user is not the caller", func(t *testing.T) {
		f := newCommentFixture()
		f.users.On("FindByID", ctx, uint64(4)).Return(&models.User{ID: 4, Nickname: "other"}, nil).Once()

		err := f.service.DeleteComment(ctx, 8, 4, 3)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
		assert.Equal(t, services.MsgInvalidCommentAuthor, appErr.Message)
		f.comments.AssertNotCalled(t, "FindOneByID", mock.Anything, mock.Anything)
		f.assertNoWrites(t)
	})

	t.Run("missing comment", func(t *testing.T) {
		f := newCommentFixture()
		f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
		f.comments.On("FindOneByID", ctx, uint64(404)).Return(nil, notFoundErr("comment")).Once()

		err := f.service.DeleteComment(ctx, 404, 3, 3)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, services.MsgCommentNotFound, appErr.Message)
		f.assertNoWrites(t)
	})

	t.Run("comment written by someone else", func(t *testing.T) {
		f := newCommentFixture()
		f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
		f.comments.On("FindOneByID", ctx, uint64(8)).Return(&models.Comment{ID: 8, UserID: 2, BoardID: 1}, nil).Once()

		_, err := f.service.UpdateComment(ctx, 8, 3, 3, "hijack")
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
		assert.Equal(t, services.MsgInvalidCommentAuthor, appErr.Message)
		f.assertNoWrites(t)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	f.users.On("FindByID", ctx, uint64(3)).Return(&models.User{ID: 3, Nickname: "reader"}, nil).Once()
	f.comments.On("FindOneByID", ctx, uint64(8)).Return(&models.Comment{ID: 8, UserID: 3, BoardID: 1}, nil).Once()
	f.comments.On("SoftDelete", ctx, uint64(8)).Return(nil).Once()

	require.NoError(t, f.service.DeleteComment(ctx, 8, 3, 3))
	assert.Equal(t, []string{services.EventCommentDeleted}, f.publisher.published())
	f.comments.AssertExpectations(t)
}
