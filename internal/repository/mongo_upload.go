package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quillpad/mediastore/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	uploadCollectionName = "media_uploads"
)

// MongoUploadRepository implements domain.UploadRepository using MongoDB
type MongoUploadRepository struct {
	collection *mongo.Collection
}

// NewMongoUploadRepository creates a new MongoDB upload repository
func NewMongoUploadRepository(db *mongo.Database) *MongoUploadRepository {
	collection := db.Collection(uploadCollectionName)

	// Create indexes for the list queries
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "note_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &MongoUploadRepository{
		collection: collection,
	}
}

// Create persists a new upload record. Called only after the backend
// has durably written the physical file.
func (r *MongoUploadRepository) Create(ctx context.Context, upload *domain.MediaUpload) error {
	_, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		return fmt.Errorf("failed to insert media upload: %w", err)
	}
	return nil
}

// GetByID retrieves an upload record by its identifier
func (r *MongoUploadRepository) GetByID(ctx context.Context, id string) (*domain.MediaUpload, error) {
	var upload domain.MediaUpload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find media upload: %w", err)
	}
	return &upload, nil
}

// ListByUsername retrieves all uploads owned by a user, newest first
func (r *MongoUploadRepository) ListByUsername(ctx context.Context, username string) ([]*domain.MediaUpload, error) {
	return r.list(ctx, bson.M{"username": username})
}

// ListByNote retrieves all uploads attached to a note, newest first
func (r *MongoUploadRepository) ListByNote(ctx context.Context, noteID string) ([]*domain.MediaUpload, error) {
	return r.list(ctx, bson.M{"note_id": noteID})
}

func (r *MongoUploadRepository) list(ctx context.Context, filter bson.M) ([]*domain.MediaUpload, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find media uploads: %w", err)
	}
	defer cursor.Close(ctx)

	uploads := []*domain.MediaUpload{}
	if err := cursor.All(ctx, &uploads); err != nil {
		return nil, fmt.Errorf("failed to decode media uploads: %w", err)
	}
	return uploads, nil
}

// Delete removes an upload record. Called only after the backend has
// removed the physical file.
func (r *MongoUploadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete media upload: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
