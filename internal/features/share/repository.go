package share

import (
	"context"
	"errors"
	"time"

	"go-vault/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShareRepository interface {
	FindByBlobRef(ctx context.Context, blobRef string) (*SharedLink, error)
	Create(ctx context.Context, link *SharedLink) error
	DeleteByBlobRef(ctx context.Context, blobRef string) error
	EnsureIndexes(ctx context.Context) error
}

type ShareRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewShareRepository(mongodb *database.MongodbDB) ShareRepository {
	return &ShareRepositoryImpl{
		Collection: mongodb.DB.Collection("shared_links"),
	}
}

func (r *ShareRepositoryImpl) FindByBlobRef(ctx context.Context, blobRef string) (*SharedLink, error) {
	var link SharedLink
	err := r.Collection.FindOne(ctx, bson.M{"blob_ref": blobRef}).Decode(&link)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ShareRepositoryImpl) Create(ctx context.Context, link *SharedLink) error {
	if link.ID.IsZero() {
		link.ID = primitive.NewObjectID()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	_, err := r.Collection.InsertOne(ctx, link)
	return err
}

func (r *ShareRepositoryImpl) DeleteByBlobRef(ctx context.Context, blobRef string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"blob_ref": blobRef})
	return err
}

func (r *ShareRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "blob_ref", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
