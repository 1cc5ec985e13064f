package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"moodtrack/internal/domain"
	"moodtrack/internal/repository"
)

// AuthService describes user registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, email, password, username string) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:      users,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, email, password, username string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	// Advisory pre-checks; the store's UNIQUE constraints catch race losers.
	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) checkAvailable(ctx context.Context, username, email string) error {
	var conflict error

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		conflict = ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	// The email lookup runs even after a username hit, matching the two
	// independent lookups the registration contract requires.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		if conflict == nil {
			conflict = ErrEmailTaken
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	return conflict
}

// Login resolves the identifier against email first, then username, and
// verifies the password against the stored bcrypt hash.
func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("resolve identifier: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
