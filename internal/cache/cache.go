package cache

import (
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent. An expired entry is
// indistinguishable from one that was never set; callers recompute from the
// source of truth either way.
var ErrMiss = errors.New("cache miss")

// Cache is a look-aside key-value store with per-entry TTL. There is no
// eviction beyond expiry and no transactional coupling to the record store.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string) error
}
