package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/audit"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/obs"
)

// deniedMessage never names the missing permission.
const deniedMessage = "You do not have permission to perform this action."

// RequirePermission guards a handler behind a single permission key.
func (a *API) RequirePermission(perm string) func(http.Handler) http.Handler {
	return a.RequireAnyPermission(perm)
}

// RequireAnyPermission admits the request if any of the listed permissions is
// granted. Checks run left to right and stop at the first grant, so later
// permissions cost nothing when an earlier one passes.
func (a *API) RequireAnyPermission(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				obs.AuthDecision("unauthenticated")
				writeError(w, r, http.StatusUnauthorized, "Token required")
				return
			}

			for _, perm := range perms {
				granted, err := a.hasPermission(r.Context(), id, perm)
				if err != nil {
					a.authorizationFailure(w, r, id, err)
					return
				}
				if granted {
					obs.AuthDecision("granted")
					next.ServeHTTP(w, r)
					return
				}
			}

			obs.AuthDecision("denied")
			_ = audit.LogEvent(r.Context(), "auth.permission.denied", map[string]any{
				"permissions": perms,
				"role":        id.TokenRole,
			})
			writeError(w, r, http.StatusForbidden, deniedMessage)
		})
	}
}

// hasPermission resolves the caller's effective permission set and tests one
// key against it. Resolution is fresh per check: nothing is memoized on the
// request, so a grant can never leak across permissions or requests.
func (a *API) hasPermission(ctx context.Context, id auth.Identity, perm string) (bool, error) {
	user := id.User

	isTenantAdmin := false
	if !user.IsSuperAdmin && user.ActiveOrganizationID != "" {
		m, err := a.memberships.FindActiveMembership(ctx, user.ID, user.ActiveOrganizationID)
		switch {
		case err == nil:
			isTenantAdmin = m.IsTenantAdmin()
		case errors.Is(err, auth.ErrNotFound):
			// No ACTIVE membership: no elevation, not an error.
		default:
			return false, err
		}
	}

	role := id.TokenRole
	if role == "" {
		role = user.Role
	}

	set, err := a.resolver.Resolve(role, user.IsSuperAdmin, isTenantAdmin, user.Permissions)
	if err != nil {
		return false, err
	}
	return set.Has(perm), nil
}

// authorizationFailure maps collaborator errors to responses. Every branch
// fails closed: an unknown role or an unreachable membership store must never
// grant access.
func (a *API) authorizationFailure(w http.ResponseWriter, r *http.Request, id auth.Identity, err error) {
	obs.AuthDecision("error")
	msg := "authorization_store_failure"
	if errors.Is(err, auth.ErrUnknownRole) {
		msg = "unknown_role_in_role_table"
	}
	obs.LogRequest(map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "error",
		"msg":        msg,
		"request_id": RequestIDFromContext(r.Context()),
		"user_id":    id.User.ID,
		"error":      err.Error(),
	})
	writeError(w, r, http.StatusInternalServerError, "authorization error")
}
