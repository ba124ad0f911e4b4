package cache

import "context"

// DefaultTTL is seven days: cached records older than that are treated
// as absent.
const DefaultTTL = 7 * 24 * 60 * 60 // seconds

// Store is a namespaced key-value cache with a single fixed TTL.
//
// Both operations fail soft: a missing key, an expired record, or an
// unreachable backend all surface as a plain miss. Cache trouble must
// never abort a lookup, only make it slower.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Key builds a caller-namespaced key so a provider-level entry and a
// composite entry for the same number never collide.
func Key(namespace, number string) string {
	return namespace + ":" + number
}
