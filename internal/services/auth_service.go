package services

import (
	"fmt"
	"time"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the identity carried by an access token.
type Claims struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
	jwt.StandardClaims
}

// AuthService issues and verifies access tokens.
type AuthService struct {
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		now:        time.Now,
	}
}

// TokenDuration reports how long issued tokens stay valid.
func (s *AuthService) TokenDuration() time.Duration {
	return s.tokenDurat
}

// IssueToken signs an HS256 token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:       user.ID,
		Nickname: user.Nickname,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenDurat).Unix(),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.NewUnauthorized(MsgTokenFailed, err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		logger.Debugf("token validation error: %v", err)
		return nil, apperror.NewUnauthorized(MsgAuthorizationFailed, fmt.Errorf("invalid token: %w", err))
	}
	if !token.Valid || claims.ID == 0 {
		return nil, apperror.NewUnauthorized(MsgAuthorizationFailed, fmt.Errorf("invalid token"))
	}
	return claims, nil
}
