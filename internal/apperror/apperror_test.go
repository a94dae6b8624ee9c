package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/boardhub/board-api/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusCode(t *testing.T) {
	cases := map[*apperror.AppError]int{
		apperror.NewNotFound("x"):          http.StatusNotFound,
		apperror.NewBadRequest("x"):        http.StatusBadRequest,
		apperror.NewValidation(nil):        http.StatusBadRequest,
		apperror.NewConflict("x"):          http.StatusConflict,
		apperror.NewUnauthorized("x", nil): http.StatusUnauthorized,
		apperror.NewInternal("x", nil):     http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.StatusCode(), err.Message)
	}
}

func TestAppError_WrappedChain(t *testing.T) {
	cause := errors.New("token expired")
	err := fmt.Errorf("verify: %w", apperror.NewUnauthorized("authorization failed", cause))

	appErr, ok := apperror.As(err)
	assert.True(t, ok)
	assert.Equal(t, "authorization failed", appErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.Is(err, apperror.UnauthorizedError))
	assert.False(t, apperror.Is(err, apperror.NotFoundError))
	assert.False(t, apperror.Is(errors.New("plain"), apperror.NotFoundError))
}

func TestNewValidation_UsesFirstFieldMessage(t *testing.T) {
	err := apperror.NewValidation([]apperror.FieldError{
		{Field: "nickname", Message: "nickname is required"},
		{Field: "password", Message: "password is required"},
	})
	assert.Equal(t, "nickname is required", err.Error())
	assert.Len(t, err.Fields, 2)
}
