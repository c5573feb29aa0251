package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-vault/internal/common/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

type UserService interface {
	// ResolveCaller maps an opaque identity token to its user record.
	// An empty token is Unauthenticated; a valid token without a backing
	// record is an internal inconsistency, never a silent miss.
	ResolveCaller(ctx context.Context, identityToken string) (*User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// Sync operations applied by the external organization-management
	// event source.
	CreateUser(ctx context.Context, identityToken, name, image string) error
	UpdateUser(ctx context.Context, identityToken, name, image string) error
	AddOrgMembership(ctx context.Context, identityToken, orgID string, role Role) error
	UpdateOrgRole(ctx context.Context, identityToken, orgID string, role Role) error
}

type UserServiceImpl struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &UserServiceImpl{UserRepo: userRepo}
}

func (s *UserServiceImpl) ResolveCaller(ctx context.Context, identityToken string) (*User, error) {
	if identityToken == "" {
		return nil, apperr.ErrUnauthenticated
	}

	user, err := s.UserRepo.FindByIdentity(ctx, identityToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: identity has no user record", apperr.ErrInconsistent)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no user found", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &Profile{Name: user.Name, Image: user.Image}, nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, identityToken, name, image string) error {
	now := time.Now()
	return s.UserRepo.Create(ctx, &User{
		IdentityToken:  identityToken,
		Name:           name,
		Image:          image,
		OrgMemberships: make(map[string]Role),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, identityToken, name, image string) error {
	err := s.UserRepo.UpdateProfile(ctx, identityToken, name, image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: no user found with this token", apperr.ErrNotFound)
	}
	return err
}

func (s *UserServiceImpl) AddOrgMembership(ctx context.Context, identityToken, orgID string, role Role) error {
	err := s.UserRepo.SetOrgRole(ctx, identityToken, orgID, role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: identity has no user record", apperr.ErrInconsistent)
	}
	return err
}

func (s *UserServiceImpl) UpdateOrgRole(ctx context.Context, identityToken, orgID string, role Role) error {
	user, err := s.UserRepo.FindByIdentity(ctx, identityToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: identity has no user record", apperr.ErrInconsistent)
		}
		return err
	}

	if _, ok := user.RoleIn(orgID); !ok {
		return fmt.Errorf("%w: expected an org membership but none was found during update", apperr.ErrInconsistent)
	}

	return s.UserRepo.SetOrgRole(ctx, identityToken, orgID, role)
}
