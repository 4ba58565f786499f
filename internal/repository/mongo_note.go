package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillpad/mediastore/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const noteCollectionName = "notes"

// MongoNoteRepository implements the domain.NoteService lookup contract
// against the notes collection owned by the note service. This
// subsystem only ever reads from it.
type MongoNoteRepository struct {
	collection *mongo.Collection
}

// NewMongoNoteRepository creates a new note lookup repository
func NewMongoNoteRepository(db *mongo.Database) *MongoNoteRepository {
	return &MongoNoteRepository{
		collection: db.Collection(noteCollectionName),
	}
}

// GetNoteByIDOrAlias resolves a note by its id or its alias
func (r *MongoNoteRepository) GetNoteByIDOrAlias(ctx context.Context, idOrAlias string) (*domain.Note, error) {
	filter := bson.M{"$or": []bson.M{
		{"_id": idOrAlias},
		{"alias": idOrAlias},
	}}

	var note domain.Note
	err := r.collection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}
