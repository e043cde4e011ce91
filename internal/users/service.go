package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Register hashes the password and stores the account. Email is unique.
func (s *Service) Register(ctx context.Context, req CreateUserRequest) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return User{}, fmt.Errorf("%w: email %q already registered", httpx.ErrDuplicate, req.Email)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return User{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, User{Name: req.Name, Email: req.Email, PasswordHash: string(hash)})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
