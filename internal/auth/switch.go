package auth

import (
	"fmt"
	"strings"
	"time"
)

// SwitchRole re-issues a session token with the requested role claim.
//
// This is a re-assertion mechanism, not an escalation path: the requested
// role must be in the switchable set (ErrInvalidInput otherwise) and must
// equal the user's stored role (ErrForbidden otherwise). The prior token is
// not revoked; tokens are stateless and coexist until natural expiry.
func (i *TokenIssuer) SwitchRole(user *User, requested string) (string, time.Time, error) {
	requested = strings.TrimSpace(requested)
	if !IsSwitchableRole(requested) {
		return "", time.Time{}, fmt.Errorf("%w: role %q is not switchable", ErrInvalidInput, requested)
	}
	if user == nil || user.Role != requested {
		return "", time.Time{}, ErrForbidden
	}
	return i.Issue(user.ID, requested)
}
