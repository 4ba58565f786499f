package domain

import (
	"context"
	"time"
)

// Note is the document an upload is attached to. The note service is an
// external collaborator; only the lookup contract is consumed here.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Alias     string    `bson:"alias,omitempty" json:"alias,omitempty"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NoteService resolves notes by their id or their human-readable alias.
type NoteService interface {
	// GetNoteByIDOrAlias returns ErrNotFound if no such note exists.
	GetNoteByIDOrAlias(ctx context.Context, idOrAlias string) (*Note, error)
}
