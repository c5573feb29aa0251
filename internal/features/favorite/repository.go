package favorite

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

type FavoriteRepository interface {
	Find(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) (*Favorite, error)
	Create(ctx context.Context, fav *Favorite) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// FileIDSet returns the caller's favorited file ids for the org as a
	// set, so membership tests against a file list are O(1) per file.
	FileIDSet(ctx context.Context, userID primitive.ObjectID, orgID string) (map[primitive.ObjectID]struct{}, error)
	DeleteByFile(ctx context.Context, fileID primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type FavoriteRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFavoriteRepository(mongodb *database.MongodbDB) FavoriteRepository {
	return &FavoriteRepositoryImpl{
		Collection: mongodb.DB.Collection("favorites"),
	}
}

func (r *FavoriteRepositoryImpl) Find(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) (*Favorite, error) {
	var fav Favorite
	err := r.Collection.FindOne(ctx, bson.M{
		"user_id": userID,
		"org_id":  orgID,
		"file_id": fileID,
	}).Decode(&fav)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavoriteRepositoryImpl) Create(ctx context.Context, fav *Favorite) error {
	if fav.ID.IsZero() {
		fav.ID = primitive.NewObjectID()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}
	_, err := r.Collection.InsertOne(ctx, fav)
	return err
}

func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *FavoriteRepositoryImpl) FileIDSet(ctx context.Context, userID primitive.ObjectID, orgID string) (map[primitive.ObjectID]struct{}, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{
		"user_id": userID,
		"org_id":  orgID,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	set := make(map[primitive.ObjectID]struct{})
	for cursor.Next(ctx) {
		var fav Favorite
		if err := cursor.Decode(&fav); err != nil {
			return nil, err
		}
		set[fav.FileID] = struct{}{}
	}
	return set, cursor.Err()
}

func (r *FavoriteRepositoryImpl) DeleteByFile(ctx context.Context, fileID primitive.ObjectID) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"file_id": fileID})
	return err
}

func (r *FavoriteRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "org_id", Value: 1},
			{Key: "file_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
