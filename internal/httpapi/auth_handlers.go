package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/audit"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type switchRoleRequest struct {
	Role string `json:"role"`
}

type tokenResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleLogin verifies email/password and issues the initial session token.
// Wrong email, wrong password and suspended account all answer the same 401
// so the endpoint does not confirm which accounts exist.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "authentication error")
		return
	}
	if user.Status != auth.UserStatusActive {
		writeError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, expiresAt, err := a.issuer.Issue(user.ID, user.Role)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user_id":    user.ID,
		"role":       user.Role,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{
		Success:   true,
		Message:   "Login successful!",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// handleSwitchRole re-issues the session token with the requested role claim.
func (a *API) handleSwitchRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Token required")
		return
	}

	var req switchRoleRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, expiresAt, err := a.issuer.SwitchRole(id.User, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, "Requested role cannot be switched to")
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, r, http.StatusForbidden, deniedMessage)
		default:
			writeError(w, r, http.StatusInternalServerError, "token generation failed")
		}
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.role.switched", map[string]any{
		"role":       req.Role,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{
		Success:   true,
		Message:   "Role switched successfully!",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// handleMe returns the authenticated user and their effective permissions.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Token required")
		return
	}

	user := id.User
	isTenantAdmin := false
	if !user.IsSuperAdmin && user.ActiveOrganizationID != "" {
		m, err := a.memberships.FindActiveMembership(r.Context(), user.ID, user.ActiveOrganizationID)
		switch {
		case err == nil:
			isTenantAdmin = m.IsTenantAdmin()
		case errors.Is(err, auth.ErrNotFound):
		default:
			writeError(w, r, http.StatusInternalServerError, "authorization error")
			return
		}
	}

	role := id.TokenRole
	if role == "" {
		role = user.Role
	}
	set, err := a.resolver.Resolve(role, user.IsSuperAdmin, isTenantAdmin, user.Permissions)
	if err != nil {
		a.authorizationFailure(w, r, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"user":        userPayload(user),
		"role":        role,
		"grants_all":  set.GrantsAll(),
		"permissions": set.Keys(),
	})
}
