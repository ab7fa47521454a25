package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user_register/internal/model"
	"user_register/internal/repository"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// RegisterService creates user records.
type RegisterService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
}

type registerService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewRegisterService creates a new RegisterService
func NewRegisterService(userRepo repository.UserRepository) RegisterService {
	return &registerService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Register stores a new user. Uniqueness is left to the store: there is no
// lookup before the insert, so two concurrent calls for one email are
// resolved by the unique index.
func (s *registerService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	user := req.ToUser(s.now().UTC())

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}
