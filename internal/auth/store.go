package auth

import "context"

// UserStore loads acting users. Implementations return ErrNotFound when no
// row matches; any other error is a collaborator failure and callers must
// fail closed.
type UserStore interface {
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MembershipStore resolves organization memberships.
type MembershipStore interface {
	// FindActiveMembership returns the user's ACTIVE membership in the
	// organization, or ErrNotFound when none exists. ErrNotFound is not an
	// authorization failure: it simply means tenant-admin elevation does not
	// apply. When duplicate ACTIVE rows exist the earliest-created row is
	// returned.
	FindActiveMembership(ctx context.Context, userID, organizationID string) (*Membership, error)
}
