package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardhub/board-api/internal/apperror"
	"github.com/boardhub/board-api/internal/models"
	"github.com/boardhub/board-api/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles sign-up and sign-in.
type UserService struct {
	userRepo    repositories.UserRepository
	guard       *Guard
	authService *AuthService
	notifier    *Notifier
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, guard *Guard, authService *AuthService, notifier *Notifier) *UserService {
	return &UserService{
		userRepo:    userRepo,
		guard:       guard,
		authService: authService,
		notifier:    notifier,
	}
}

// CreateNewUser registers a user after checking the nickname is free.
// The account password is stored as a bcrypt hash.
func (s *UserService) CreateNewUser(ctx context.Context, nickname, password string) (UserView, error) {
	if err := s.guard.EnsureNicknameAvailable(ctx, nickname); err != nil {
		return UserView{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Nickname: nickname, Password: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, repositories.ErrDuplicate) {
			return UserView{}, apperror.New(apperror.ConflictError, MsgUserAlreadyExists, err)
		}
		return UserView{}, err
	}

	view := toUserView(user)
	s.notifier.Notify(ctx, EventUserCreated, view)
	return view, nil
}

// LoginUser checks the credentials and returns a signed access token.
func (s *UserService) LoginUser(ctx context.Context, nickname, password string) (string, error) {
	user, err := s.guard.RequireUserByNickname(ctx, nickname)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.NewBadRequest(MsgLoginFailed)
	}

	return s.authService.IssueToken(user)
}

// Authenticate resolves a token to its user. The user must still exist and
// carry the nickname the token was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.authService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NewUnauthorized(MsgAuthorizationFailed, err)
		}
		return nil, err
	}
	if user.Nickname != claims.Nickname {
		return nil, apperror.NewUnauthorized(MsgAuthorizationFailed, nil)
	}
	return user, nil
}
