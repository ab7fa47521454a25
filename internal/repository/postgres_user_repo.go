package repository

import (
	"context"
	"errors"
	"fmt"

	"user_register/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pgUniqueViolation = "23505"

// PgxPool is the subset of *pgxpool.Pool used by the PostgreSQL repository.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

type postgresUserRepository struct {
	db PgxPool
}

// NewPostgresUserRepository creates a UserRepository backed by the users table.
func NewPostgresUserRepository(db PgxPool) UserRepository {
	return &postgresUserRepository{db: db}
}

// Create inserts a new user row. The id is generated here so that records
// look the same whichever backend stored them.
func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	id := primitive.NewObjectID()
	sql := `INSERT INTO users (id, name, email, password, phone, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, id.Hex(), user.Name, user.Email, user.Password, user.Phone, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *postgresUserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *postgresUserRepository) Close(_ context.Context) error {
	r.db.Close()
	return nil
}
