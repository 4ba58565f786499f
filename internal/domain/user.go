package domain

import (
	"context"
	"time"
)

// User is the identity that owns uploads. User management lives in a
// separate service; this subsystem only needs the lookup contract.
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Username    string    `bson:"username" json:"username"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// UserService resolves users by username.
type UserService interface {
	// GetUserByUsername returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
