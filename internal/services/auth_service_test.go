package services_test

import (
	"testing"
	"time"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_IssueAndValidateToken(t *testing.T) {
	authService := services.NewAuthService(testJWTSecret, 30*time.Minute)
	user := &models.User{ID: 7, Nickname: "testUser"}

	token, err := authService.IssueToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.ID)
	assert.Equal(t, "testUser", claims.Nickname)
	assert.Equal(t, int64(30*60), claims.ExpiresAt-claims.IssuedAt)
	assert.Equal(t, 30*time.Minute, authService.TokenDuration())
}

func TestAuthService_ValidateTokenRejects(t *testing.T) {
	authService := services.NewAuthService(testJWTSecret, time.Hour)

	sign := func(secret string, claims services.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}
	expired := jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()}

	cases := map[string]string{
		"garbage":      "invalid.token.string",
		"wrong secret": sign("other_secret", services.Claims{ID: 1, Nickname: "a", StandardClaims: valid}),
		"expired":      sign(testJWTSecret, services.Claims{ID: 1, Nickname: "a", StandardClaims: expired}),
		"no subject":   sign(testJWTSecret, services.Claims{Nickname: "a", StandardClaims: valid}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := authService.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.UnauthorizedError))
		})
	}
}

func TestAuthService_ValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	authService := services.NewAuthService(testJWTSecret, time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{ID: 1, Nickname: "a"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.True(t, apperror.Is(err, apperror.UnauthorizedError))
}
