package access

import (
	"fmt"
	"strings"

	"go-vault/internal/common/apperr"
	"go-vault/internal/features/user"
)

// Decision is the outcome of an organization access check. Denial is a
// normal value, not an error; callers decide whether it becomes an empty
// read result or a rejected write.
type Decision struct {
	Allowed bool
	Role    user.Role
}

// Target identifies the file being gated without importing the file package.
type Target struct {
	OrgID      string
	UploaderID string
}

// CheckOrgAccess allows a caller who holds a membership for the
// organization, or who matches the deprecated legacy token rule.
func CheckOrgAccess(u *user.User, orgID string) Decision {
	if u == nil || orgID == "" {
		return Decision{}
	}

	if role, ok := u.RoleIn(orgID); ok {
		return Decision{Allowed: true, Role: role}
	}

	if legacyTokenContainsOrg(u.IdentityToken, orgID) {
		return Decision{Allowed: true, Role: user.RoleMember}
	}

	return Decision{}
}

// CheckFileAccess delegates to the file's owning organization.
func CheckFileAccess(u *user.User, t Target) Decision {
	return CheckOrgAccess(u, t.OrgID)
}

// RequireAdminOrOwner gates destructive file operations: the uploader or an
// org admin may proceed. Rename deliberately does not go through this gate.
func RequireAdminOrOwner(u *user.User, t Target) error {
	if u == nil {
		return apperr.ErrUnauthenticated
	}

	if t.UploaderID != "" && t.UploaderID == u.ID.Hex() {
		return nil
	}

	if role, ok := u.RoleIn(t.OrgID); ok && role == user.RoleAdmin {
		return nil
	}

	return fmt.Errorf("%w: admin or uploader required", apperr.ErrAccessDenied)
}

// Deprecated: legacyTokenContainsOrg grants access when the organization id
// is textually contained in the identity token. It exists only for the older
// identity scheme where personal tokens embedded the org id; delete this
// function once those tokens are retired. It never touches the membership
// path above.
func legacyTokenContainsOrg(identityToken, orgID string) bool {
	return orgID != "" && strings.Contains(identityToken, orgID)
}
