package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
)

func TestRequirePermissionAdminAllowed(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		if id != "user-1" {
			return nil, auth.ErrNotFound
		}
		return activeUser(id, auth.RoleAdmin), nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleAdmin)))
	defer resp.Body.Close()
	// Admin holds users.manage; the guard admits, then the handler misses user-2.
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRequirePermissionDriverDenied(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		return activeUser(id, auth.RoleDriver), nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleDriver)))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["message"] != deniedMessage {
		t.Fatalf("denial must be generic, got: %v", body["message"])
	}
}

func TestRequirePermissionSuperAdminAllowed(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		if id != "user-1" {
			return nil, auth.ErrNotFound
		}
		u := activeUser(id, auth.RoleSuperAdmin)
		u.IsSuperAdmin = true
		return u, nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleSuperAdmin)))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if h.memberships.calls != 0 {
		t.Fatalf("super admin must not trigger membership lookup, got %d calls", h.memberships.calls)
	}
}

func TestRequirePermissionTenantAdminElevation(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		if id != "user-1" {
			return nil, auth.ErrNotFound
		}
		u := activeUser(id, auth.RoleClient)
		u.ActiveOrganizationID = "org-7"
		return u, nil
	}
	h.memberships.find = func(ctx context.Context, userID, organizationID string) (*auth.Membership, error) {
		if organizationID != "org-7" {
			t.Fatalf("lookup must use the active organization, got %q", organizationID)
		}
		return &auth.Membership{
			UserID:         userID,
			OrganizationID: organizationID,
			OrgRole:        auth.RoleTenantAdmin,
			Status:         auth.MembershipStatusActive,
		}, nil
	}

	// Base Client lacks users.manage; the TENANT_ADMIN entry grants it.
	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleClient)))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 (authorized, target missing), got %d", resp.StatusCode)
	}
}

func TestRequirePermissionNonAdminMembership(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		u := activeUser(id, auth.RoleClient)
		u.ActiveOrganizationID = "org-7"
		return u, nil
	}
	h.memberships.find = func(ctx context.Context, userID, organizationID string) (*auth.Membership, error) {
		return &auth.Membership{
			UserID:         userID,
			OrganizationID: organizationID,
			OrgRole:        "MEMBER",
			Status:         auth.MembershipStatusActive,
		}, nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleClient)))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestRequirePermissionNoActiveOrganizationSkipsLookup(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		return activeUser(id, auth.RoleClient), nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleClient)))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if h.memberships.calls != 0 {
		t.Fatalf("no active organization must skip membership lookup, got %d calls", h.memberships.calls)
	}
}

func TestRequirePermissionFailsClosedOnStoreError(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		u := activeUser(id, auth.RoleAdmin)
		u.ActiveOrganizationID = "org-7"
		return u, nil
	}
	h.memberships.find = func(ctx context.Context, userID, organizationID string) (*auth.Membership, error) {
		return nil, errors.New("connection refused")
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", auth.RoleAdmin)))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("membership failure must fail closed with 500, got %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["success"] != false {
		t.Fatalf("expected failure envelope, got %v", body)
	}
}

func TestRequirePermissionUnknownRole(t *testing.T) {
	h := newTestAPI(t)
	h.users.find = func(ctx context.Context, id string) (*auth.User, error) {
		return activeUser(id, "Dispatcher"), nil
	}

	resp := h.get("/v1/users/user-2", bearerHeader(h.tokenFor("user-1", "Dispatcher")))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unknown role must surface as 500, got %d", resp.StatusCode)
	}
}

func TestRequireAnyPermissionShortCircuit(t *testing.T) {
	h := newTestAPI(t)
	memberships := h.memberships

	guard := h.api.RequireAnyPermission(auth.PermCustomersView, auth.PermUsersManage)
	next := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Client holds customers.view; first check grants, second never runs.
	user := activeUser("user-1", auth.RoleClient)
	user.ActiveOrganizationID = "org-7"

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), auth.Identity{User: user, TokenRole: auth.RoleClient}))
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if memberships.calls != 1 {
		t.Fatalf("expected 1 membership lookup for the granting check, got %d", memberships.calls)
	}
}

func TestRequireAnyPermissionEvaluatesAllOnDenial(t *testing.T) {
	h := newTestAPI(t)
	memberships := h.memberships

	guard := h.api.RequireAnyPermission(auth.PermUsersManage, auth.PermReportsExport)
	next := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	user := activeUser("user-1", auth.RoleDriver)
	user.ActiveOrganizationID = "org-7"

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), auth.Identity{User: user, TokenRole: auth.RoleDriver}))
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if memberships.calls != 2 {
		t.Fatalf("expected 2 membership lookups, one per failed check, got %d", memberships.calls)
	}
}

func TestRequirePermissionMissingIdentity(t *testing.T) {
	h := newTestAPI(t)

	guard := h.api.RequirePermission(auth.PermUsersManage)
	next := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rr := httptest.NewRecorder()
	next.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
