// Package cache stores completed verification results keyed by content
// hash, so re-submitting the same text never re-runs the pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by all layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContentHash fingerprints the verified text. Identical text always
// produces the same hash, regardless of URL or request metadata.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Key builds the namespaced cache key for a content hash. The version
// segment invalidates old entries when the result shape changes.
func Key(contentHash string) string {
	return "trustlens:v1:" + contentHash
}
