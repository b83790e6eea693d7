package auth

import "time"

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// MembershipStatusActive marks the only membership rows the lookup returns.
const MembershipStatusActive = "ACTIVE"

// User is the acting identity as read by the authorization core. Created and
// mutated by the user-management services; read-only here.
type User struct {
	ID                   string
	Email                string
	PasswordHash         string
	FirstName            string
	LastName             string
	Role                 string
	IsSuperAdmin         bool
	ActiveOrganizationID string
	Permissions          []string
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Membership relates a user to an organization with an org-scoped role.
type Membership struct {
	UserID         string
	OrganizationID string
	OrgRole        string
	Status         string
	CreatedAt      time.Time
}

// IsTenantAdmin reports whether this membership elevates the user to tenant
// admin within its organization.
func (m Membership) IsTenantAdmin() bool {
	return m.OrgRole == RoleTenantAdmin
}
