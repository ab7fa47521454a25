package repository

import (
	"context"
	"errors"

	"user_register/internal/model"
)

var (
	// ErrDuplicateKey is returned by Create when the email is already stored.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrMissingEmail is the store's required-field rejection for an empty email.
	ErrMissingEmail = errors.New("repository: email is required")
)

// UserRepository is the write-only surface of the user store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func validateUser(user *model.User) error {
	if user.Email == "" {
		return ErrMissingEmail
	}
	return nil
}
