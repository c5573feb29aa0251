package user

import (
	"context"
	"errors"

	"go-vault/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIdentity(ctx context.Context, identityToken string) (*User, error)
	UpdateProfile(ctx context.Context, identityToken, name, image string) error
	SetOrgRole(ctx context.Context, identityToken, orgID string, role Role) error
	EnsureIndexes(ctx context.Context) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.OrgMemberships == nil {
		user.OrgMemberships = make(map[string]Role)
	}
	_, err := r.Collection.InsertOne(ctx, user)
	return err
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var user User
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIdentity(ctx context.Context, identityToken string) (*User, error) {
	var user User
	err := r.Collection.FindOne(ctx, bson.M{"identity_token": identityToken}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, identityToken, name, image string) error {
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"identity_token": identityToken},
		bson.M{"$set": bson.M{"name": name, "image": image}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepositoryImpl) SetOrgRole(ctx context.Context, identityToken, orgID string, role Role) error {
	if orgID == "" {
		return errors.New("org id required")
	}
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"identity_token": identityToken},
		bson.M{"$set": bson.M{"org_memberships." + orgID: role}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identity_token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
