package file

import (
	"context"

	"go-vault/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FileRepository interface {
	Save(ctx context.Context, file *File) error
	Get(ctx context.Context, id string) (*File, error)
	FindActiveByOrg(ctx context.Context, orgID string) ([]*File, error)
	FindPendingByOrg(ctx context.Context, orgID string) ([]*File, error)
	// FindAllPending spans organizations; only the retention sweeper uses it.
	FindAllPending(ctx context.Context) ([]*File, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string) error
	SetMarkedForDeletion(ctx context.Context, id primitive.ObjectID, marked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type FileRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFileRepository(mongodb *database.MongodbDB) FileRepository {
	return &FileRepositoryImpl{
		Collection: mongodb.DB.Collection("files"),
	}
}

func (r *FileRepositoryImpl) Save(ctx context.Context, file *File) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, file)
	return err
}

func (r *FileRepositoryImpl) Get(ctx context.Context, id string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var file File
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&file)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) findByFilter(ctx context.Context, filter bson.M) ([]*File, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	files := []*File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *FileRepositoryImpl) FindActiveByOrg(ctx context.Context, orgID string) ([]*File, error) {
	return r.findByFilter(ctx, bson.M{"org_id": orgID, "marked_for_deletion": false})
}

func (r *FileRepositoryImpl) FindPendingByOrg(ctx context.Context, orgID string) ([]*File, error) {
	return r.findByFilter(ctx, bson.M{"org_id": orgID, "marked_for_deletion": true})
}

func (r *FileRepositoryImpl) FindAllPending(ctx context.Context) ([]*File, error) {
	return r.findByFilter(ctx, bson.M{"marked_for_deletion": true})
}

func (r *FileRepositoryImpl) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *FileRepositoryImpl) SetMarkedForDeletion(ctx context.Context, id primitive.ObjectID, marked bool) error {
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"marked_for_deletion": marked}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *FileRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "marked_for_deletion", Value: 1}}},
		{Keys: bson.D{{Key: "marked_for_deletion", Value: 1}}},
	})
	return err
}
