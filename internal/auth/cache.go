package auth

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultMembershipCacheSize = 4096
	defaultMembershipCacheTTL  = 30 * time.Second
)

// cachedMembership is an immutable cache entry. A nil membership records a
// not-found result so repeated checks for non-members also avoid the store.
type cachedMembership struct {
	membership *Membership
}

var _ MembershipStore = (*CachedMembershipStore)(nil)

// CachedMembershipStore decorates a MembershipStore with a bounded TTL cache
// keyed by (userID, organizationID). Entries expire rather than being
// invalidated, so tenant-admin elevation after a membership change is stale
// for at most the TTL. Store errors are never cached.
type CachedMembershipStore struct {
	inner MembershipStore
	cache *lru.LRU[string, cachedMembership]
}

// NewCachedMembershipStore wraps inner with a cache of at most size entries
// expiring after ttl. Non-positive arguments fall back to defaults.
func NewCachedMembershipStore(inner MembershipStore, size int, ttl time.Duration) *CachedMembershipStore {
	if size <= 0 {
		size = defaultMembershipCacheSize
	}
	if ttl <= 0 {
		ttl = defaultMembershipCacheTTL
	}
	return &CachedMembershipStore{
		inner: inner,
		cache: lru.NewLRU[string, cachedMembership](size, nil, ttl),
	}
}

func (s *CachedMembershipStore) FindActiveMembership(ctx context.Context, userID, organizationID string) (*Membership, error) {
	key := userID + "\x00" + organizationID
	if entry, ok := s.cache.Get(key); ok {
		return membershipResult(entry)
	}

	m, err := s.inner.FindActiveMembership(ctx, userID, organizationID)
	switch {
	case err == nil:
		copied := *m
		s.cache.Add(key, cachedMembership{membership: &copied})
		return membershipResult(cachedMembership{membership: &copied})
	case errors.Is(err, ErrNotFound):
		s.cache.Add(key, cachedMembership{})
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func membershipResult(entry cachedMembership) (*Membership, error) {
	if entry.membership == nil {
		return nil, ErrNotFound
	}
	copied := *entry.membership
	return &copied, nil
}
