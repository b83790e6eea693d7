package auth

import (
	"fmt"
	"sort"
	"strings"
)

// PermissionSet is the effective set of permission keys resolved for one
// authorization check. It is computed fresh per check and never persisted.
type PermissionSet struct {
	all   bool
	perms map[string]struct{}
}

// Has reports whether the set grants the permission key. A grant-all set
// (super admin) satisfies every key, including keys defined after this build.
func (s PermissionSet) Has(perm string) bool {
	if s.all {
		return true
	}
	_, ok := s.perms[perm]
	return ok
}

// GrantsAll reports whether the set is the super-admin sentinel.
func (s PermissionSet) GrantsAll() bool {
	return s.all
}

// Keys returns the granted permission keys in sorted order. Empty for a
// grant-all set; callers should check GrantsAll first.
func (s PermissionSet) Keys() []string {
	keys := make([]string, 0, len(s.perms))
	for k := range s.perms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolver computes effective permission sets from an injected role table.
// Resolution is pure: no I/O, and identical inputs always produce set-equal
// results.
type Resolver struct {
	table RoleTable
}

// NewResolver constructs a Resolver over the given role table.
func NewResolver(table RoleTable) (Resolver, error) {
	if len(table) == 0 {
		return Resolver{}, fmt.Errorf("%w: role table is empty", ErrInvalidInput)
	}
	return Resolver{table: table}, nil
}

// Resolve computes the effective permission set for a caller.
//
// Super admins receive the grant-all sentinel and no further inputs are
// consulted. Otherwise the result is the union of the role's table entry,
// the TENANT_ADMIN table entry when isTenantAdmin is set, and any explicit
// per-user overrides. A role (or, when elevated, a TENANT_ADMIN entry)
// missing from the table yields ErrUnknownRole rather than a silently empty
// set.
func (r Resolver) Resolve(role string, isSuperAdmin, isTenantAdmin bool, overrides []string) (PermissionSet, error) {
	if isSuperAdmin {
		return PermissionSet{all: true}, nil
	}

	granted, ok := r.table[role]
	if !ok {
		return PermissionSet{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	perms := make(map[string]struct{}, len(granted)+len(overrides))
	for _, p := range granted {
		perms[p] = struct{}{}
	}

	if isTenantAdmin {
		elevated, ok := r.table[RoleTenantAdmin]
		if !ok {
			return PermissionSet{}, fmt.Errorf("%w: %q", ErrUnknownRole, RoleTenantAdmin)
		}
		for _, p := range elevated {
			perms[p] = struct{}{}
		}
	}

	for _, p := range overrides {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		perms[p] = struct{}{}
	}

	return PermissionSet{perms: perms}, nil
}
