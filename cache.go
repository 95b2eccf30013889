package relgraph

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/hashstructure"
)

// Cache is an optional hook callers can use to memoize their own repeated
// Run calls. The engine itself never caches across calls, so nothing in
// traverse.go constructs or calls a Cache. It exists purely as ambient
// infrastructure a caller's own wrapper around Run can use.
type Cache interface {
	// Get retrieves a value from the cache. Returns nil, nil if the key
	// doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL. If ttl is 0,
	// the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies a single Run invocation for memoization purposes.
type CacheKey struct {
	Table      string
	JoinOrID   string
	RootIDs    []any
	Depth      int
	Predicates string
}

// NewCacheKey builds a CacheKey, hashing filters into Predicates so two
// calls with structurally equal filter maps collide even if they were
// built independently.
func NewCacheKey(table, joinOrID string, rootIDs []any, depth int, filters any) (CacheKey, error) {
	h, err := hashstructure.Hash(filters, nil)
	if err != nil {
		return CacheKey{}, err
	}
	return CacheKey{
		Table:      table,
		JoinOrID:   joinOrID,
		RootIDs:    rootIDs,
		Depth:      depth,
		Predicates: strconv.FormatUint(h, 16),
	}, nil
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	ids := make([]string, len(k.RootIDs))
	for i, id := range k.RootIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s:%s:%d:[%s]:%s", k.Table, k.JoinOrID, k.Depth, strings.Join(ids, ","), k.Predicates)
}
