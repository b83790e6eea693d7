package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
)

// handleGetUser serves GET /v1/users/{id}. The route is registered behind
// RequirePermission(users.manage); by the time this runs the caller has
// already been authenticated and authorized.
func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/users/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusBadRequest, "user id is required")
		return
	}

	user, err := a.users.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "User not found.")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    userPayload(user),
	})
}

// userPayload shapes a user for responses. The password hash never leaves the
// store layer.
func userPayload(u *auth.User) map[string]any {
	payload := map[string]any{
		"id":             u.ID,
		"email":          u.Email,
		"first_name":     u.FirstName,
		"last_name":      u.LastName,
		"role":           u.Role,
		"is_super_admin": u.IsSuperAdmin,
		"status":         u.Status,
	}
	if u.ActiveOrganizationID != "" {
		payload["active_organization_id"] = u.ActiveOrganizationID
	}
	return payload
}
