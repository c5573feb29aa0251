package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is created on first sign-in; memberships are appended/updated by the
// external organization-management event source through the sync webhook.
// OrgMemberships is keyed by organization id, so a user holds at most one
// role per organization and lookups are O(1).
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	IdentityToken  string             `json:"-" bson:"identity_token"`
	Name           string             `json:"name" bson:"name"`
	Image          string             `json:"image" bson:"image"`
	OrgMemberships map[string]Role    `json:"org_memberships" bson:"org_memberships"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// RoleIn returns the user's role in the given organization.
func (u *User) RoleIn(orgID string) (Role, bool) {
	role, ok := u.OrgMemberships[orgID]
	return role, ok
}

// Profile is the public projection served without authorization.
type Profile struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}
