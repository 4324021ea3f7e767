package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/ordersvc/domain"
)

// RevocationStoreImpl implements domain.RevocationStore on Redis. Entries are
// keyed by role plus a digest of the token, so a revoked token stays usable
// under any other role, and expire at the token's own exp so the set never
// outlives the tokens it blocks.
type RevocationStoreImpl struct {
	client *redis.Client
}

// NewRevocationStore creates a new revocation store
func NewRevocationStore(client *redis.Client) domain.RevocationStore {
	return &RevocationStoreImpl{client: client}
}

func revocationKey(token, role string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("revoked:%s:%s", role, hex.EncodeToString(sum[:]))
}

// Add implements domain.RevocationStore
func (s *RevocationStoreImpl) Add(ctx context.Context, token, role string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to block.
		return nil
	}
	return s.client.Set(ctx, revocationKey(token, role), "1", ttl).Err()
}

// Contains implements domain.RevocationStore
func (s *RevocationStoreImpl) Contains(ctx context.Context, token, role string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(token, role)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Sweep implements domain.RevocationStore. Redis expires entries on its own;
// Sweep exists so callers can force a pass in tests and alternative stores
// without native TTLs can reclaim space.
func (s *RevocationStoreImpl) Sweep(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
