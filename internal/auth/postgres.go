package auth

import (
	"context"
	"database/sql"
	"encoding/json"
)

var _ UserStore = (*PGUserStore)(nil)

// PGUserStore implements UserStore using PostgreSQL. Queries select only the
// fields the authorization core consumes downstream.
type PGUserStore struct {
	db *sql.DB
}

func NewPGUserStore(db *sql.DB) *PGUserStore {
	return &PGUserStore{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role,
	is_super_admin, active_organization_id, permissions, status, created_at, updated_at`

func (s *PGUserStore) Find(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row)
}

func (s *PGUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=$1`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u           User
		activeOrgID sql.NullString
		permissions []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.IsSuperAdmin, &activeOrgID, &permissions, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if activeOrgID.Valid {
		u.ActiveOrganizationID = activeOrgID.String
	}
	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &u.Permissions); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

var _ MembershipStore = (*PGMembershipStore)(nil)

// PGMembershipStore implements MembershipStore using PostgreSQL.
type PGMembershipStore struct {
	db *sql.DB
}

func NewPGMembershipStore(db *sql.DB) *PGMembershipStore {
	return &PGMembershipStore{db: db}
}

func (s *PGMembershipStore) FindActiveMembership(ctx context.Context, userID, organizationID string) (*Membership, error) {
	// The schema enforces at most one ACTIVE row per (user, organization);
	// the ordering keeps the result deterministic for pre-existing data that
	// predates the unique index.
	row := s.db.QueryRowContext(ctx,
		`select user_id, organization_id, org_role, status, created_at
		 from organization_memberships
		 where user_id=$1 and organization_id=$2 and status=$3
		 order by created_at asc
		 limit 1`,
		userID, organizationID, MembershipStatusActive,
	)
	var m Membership
	if err := row.Scan(&m.UserID, &m.OrganizationID, &m.OrgRole, &m.Status, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
