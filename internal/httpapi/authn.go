package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/developerDesinger/Transporter-backend-sub004/internal/auth"
	"github.com/developerDesinger/Transporter-backend-sub004/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/v1/auth/login",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
	"/",
}

// withAuth is the authentication gate: every non-public request must carry a
// verifiable bearer token resolving to an active user. The gate attaches the
// identity to the context and never mutates the request payload.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			obs.AuthDecision("unauthenticated")
			writeError(w, r, http.StatusUnauthorized, "Token required")
			return
		}

		claims, err := a.issuer.Verify(token)
		if err != nil {
			obs.AuthDecision("unauthenticated")
			writeError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := a.users.Find(r.Context(), claims.Subject)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrNotFound):
				obs.AuthDecision("unauthenticated")
				writeError(w, r, http.StatusUnauthorized, "User not found. Please login again.")
			default:
				obs.AuthDecision("error")
				writeError(w, r, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		// Anything other than ACTIVE is denied, so statuses added later
		// fail closed.
		if user.Status != auth.UserStatusActive {
			obs.AuthDecision("denied")
			msg := "Your account is not active."
			if user.Status == auth.UserStatusSuspended {
				msg = "Your account has been suspended."
			}
			writeError(w, r, http.StatusForbidden, msg)
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), auth.Identity{
			User:      user,
			TokenRole: claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
