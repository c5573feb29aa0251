package user

import (
	"context"
	"errors"
	"testing"

	"go-vault/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockUserRepo struct {
	Users map[string]*User // keyed by identity token

	CapturedOrgID string
	CapturedRole  Role
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[string]*User)}
}

func (m *MockUserRepo) Create(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.Users[u.IdentityToken] = u
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	for _, u := range m.Users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockUserRepo) FindByIdentity(ctx context.Context, identityToken string) (*User, error) {
	u, ok := m.Users[identityToken]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, identityToken, name, image string) error {
	u, ok := m.Users[identityToken]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Name = name
	u.Image = image
	return nil
}

func (m *MockUserRepo) SetOrgRole(ctx context.Context, identityToken, orgID string, role Role) error {
	u, ok := m.Users[identityToken]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if u.OrgMemberships == nil {
		u.OrgMemberships = make(map[string]Role)
	}
	u.OrgMemberships[orgID] = role
	m.CapturedOrgID = orgID
	m.CapturedRole = role
	return nil
}

func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestResolveCallerEmptyToken(t *testing.T) {
	service := &UserServiceImpl{UserRepo: NewMockUserRepo()}

	_, err := service.ResolveCaller(context.Background(), "")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveCallerMissingRecordIsInconsistent(t *testing.T) {
	service := &UserServiceImpl{UserRepo: NewMockUserRepo()}

	// A token the auth layer accepted but no sync event ever created.
	_, err := service.ResolveCaller(context.Background(), "idp|ghost")
	if !errors.Is(err, apperr.ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestResolveCallerFindsUser(t *testing.T) {
	repo := NewMockUserRepo()
	service := &UserServiceImpl{UserRepo: repo}
	ctx := context.Background()

	if err := service.CreateUser(ctx, "idp|alice", "Alice", "http://img/alice.png"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	u, err := service.ResolveCaller(ctx, "idp|alice")
	if err != nil {
		t.Fatalf("ResolveCaller failed: %v", err)
	}
	if u.Name != "Alice" {
		t.Errorf("Expected Alice, got %q", u.Name)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	service := &UserServiceImpl{UserRepo: NewMockUserRepo()}

	_, err := service.GetProfile(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddOrgMembershipUnknownIdentity(t *testing.T) {
	service := &UserServiceImpl{UserRepo: NewMockUserRepo()}

	err := service.AddOrgMembership(context.Background(), "idp|ghost", "org_abc", RoleMember)
	if !errors.Is(err, apperr.ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestUpdateOrgRolePromotesMember(t *testing.T) {
	repo := NewMockUserRepo()
	service := &UserServiceImpl{UserRepo: repo}
	ctx := context.Background()

	if err := service.CreateUser(ctx, "idp|alice", "Alice", ""); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := service.AddOrgMembership(ctx, "idp|alice", "org_abc", RoleMember); err != nil {
		t.Fatalf("AddOrgMembership failed: %v", err)
	}

	if err := service.UpdateOrgRole(ctx, "idp|alice", "org_abc", RoleAdmin); err != nil {
		t.Fatalf("UpdateOrgRole failed: %v", err)
	}
	if repo.CapturedOrgID != "org_abc" || repo.CapturedRole != RoleAdmin {
		t.Errorf("Expected admin role set for org_abc, got %s in %s", repo.CapturedRole, repo.CapturedOrgID)
	}
}

func TestUpdateOrgRoleWithoutMembershipIsInconsistent(t *testing.T) {
	repo := NewMockUserRepo()
	service := &UserServiceImpl{UserRepo: repo}
	ctx := context.Background()

	if err := service.CreateUser(ctx, "idp|alice", "Alice", ""); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// A role-changed event arriving before its membership-created event.
	err := service.UpdateOrgRole(ctx, "idp|alice", "org_abc", RoleAdmin)
	if !errors.Is(err, apperr.ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}
