package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"user_register/internal/model"
	"user_register/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	repository.UserRepository
	err error
}

func (f failingRepo) Create(context.Context, *model.User) error { return f.err }

func TestRegisterService_Register(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewRegisterService(repo)

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "p1", Phone: "555",
	})

	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.Equal(t, "p1", user.Password)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, 1, repo.Len())
}

func TestRegisterService_Register_DuplicateEmail(t *testing.T) {
	svc := NewRegisterService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, model.RegisterRequest{Name: "Other", Email: "ann@x.com", Password: "x", Phone: "1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, "email already exists", err.Error())
}

func TestRegisterService_Register_MissingEmail(t *testing.T) {
	svc := NewRegisterService(repository.NewMemoryUserRepository())

	_, err := svc.Register(context.Background(), model.RegisterRequest{Name: "Ann"})

	assert.ErrorIs(t, err, repository.ErrMissingEmail)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterService_Register_StoreFailure(t *testing.T) {
	cause := errors.New("connection lost")
	svc := NewRegisterService(failingRepo{err: cause})

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "ann@x.com"})

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterService_Register_ConcurrentSameEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewRegisterService(repo)
	const n = 20

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "race@x.com"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if errors.Is(err, ErrEmailAlreadyExists) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, rejected)
	assert.Equal(t, 1, repo.Len())
}
