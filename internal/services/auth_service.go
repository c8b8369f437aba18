package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/models"
	"github.com/fabiansimon/Frello/internal/repository"
)

// AuthService handles registration, login and profile updates.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name      string
	Role      string
	Email     string
	Expertise string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// UpdateUserInput holds the profile fields to change. Nil fields are left as is.
type UpdateUserInput struct {
	Name      *string
	Role      *string
	Expertise *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and issues an access token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("Failed to check email", zap.Error(err))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		Role:      strings.TrimSpace(input.Role),
		Expertise: strings.TrimSpace(input.Expertise),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.log.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login looks the user up by email. There is no credential check beyond that.
func (s *AuthService) Login(ctx context.Context, email string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issue(user)
}

// GetUser returns the user with the given ID.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser changes the caller's own profile.
func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		user.Role = strings.TrimSpace(*input.Role)
	}
	if input.Expertise != nil {
		user.Expertise = strings.TrimSpace(*input.Expertise)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
