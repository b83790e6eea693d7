package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var userRowColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "role",
	"is_super_admin", "active_organization_id", "permissions", "status", "created_at", "updated_at",
}

func TestPGUserStoreFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("from users where id=").
		WithArgs("user-42").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			"user-42", "ops@example.com", "$2a$10$hash", "Riley", "Chen", RoleAdmin,
			false, "org-7", []byte(`["reports.export"]`), UserStatusActive, now, now,
		))

	store := NewPGUserStore(db)
	user, err := store.Find(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if user.Email != "ops@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
	if user.ActiveOrganizationID != "org-7" {
		t.Fatalf("unexpected active organization: %q", user.ActiveOrganizationID)
	}
	if len(user.Permissions) != 1 || user.Permissions[0] != PermReportsExport {
		t.Fatalf("permissions were not decoded: %v", user.Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGUserStoreFindNullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("from users where email=").
		WithArgs("driver@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			"user-9", "driver@example.com", "$2a$10$hash", "Sam", "Okafor", RoleDriver,
			false, nil, nil, UserStatusActive, now, now,
		))

	store := NewPGUserStore(db)
	user, err := store.FindByEmail(context.Background(), "driver@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.ActiveOrganizationID != "" {
		t.Fatalf("expected empty active organization, got %q", user.ActiveOrganizationID)
	}
	if len(user.Permissions) != 0 {
		t.Fatalf("expected no override permissions, got %v", user.Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGUserStoreFindNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("from users where id=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	store := NewPGUserStore(db)
	if _, err := store.Find(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGMembershipStoreFindActiveMembership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("select user_id, organization_id, org_role, status, created_at").
		WithArgs("user-42", "org-7", MembershipStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "organization_id", "org_role", "status", "created_at"}).
			AddRow("user-42", "org-7", RoleTenantAdmin, MembershipStatusActive, now))

	store := NewPGMembershipStore(db)
	m, err := store.FindActiveMembership(context.Background(), "user-42", "org-7")
	if err != nil {
		t.Fatalf("FindActiveMembership: %v", err)
	}
	if !m.IsTenantAdmin() {
		t.Fatalf("expected tenant-admin membership, got role %s", m.OrgRole)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGMembershipStoreNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select user_id, organization_id, org_role, status, created_at").
		WithArgs("user-42", "org-7", MembershipStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "organization_id", "org_role", "status", "created_at"}))

	store := NewPGMembershipStore(db)
	if _, err := store.FindActiveMembership(context.Background(), "user-42", "org-7"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
