package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillpad/mediastore/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const userCollectionName = "users"

// MongoUserRepository implements the domain.UserService lookup contract
// against the users collection owned by the user service.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user lookup repository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetUserByUsername resolves a user by username
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
