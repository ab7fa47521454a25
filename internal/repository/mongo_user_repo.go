package repository

import (
	"context"
	"fmt"

	"user_register/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUserRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoUserRepository creates a UserRepository backed by the users collection of db.
// The unique email index is expected to exist already (see config.EnsureMongoIndexes).
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{db: db, collection: db.Collection("users")}
}

// Create inserts a new user document
func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return mapMongoError(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *mongoUserRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func (r *mongoUserRepository) Close(ctx context.Context) error {
	return r.db.Client().Disconnect(ctx)
}

// mapMongoError turns a unique index violation (code 11000) into ErrDuplicateKey.
func mapMongoError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return fmt.Errorf("failed to insert user: %w", err)
}
