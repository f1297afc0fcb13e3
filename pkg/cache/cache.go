// Package cache provides response caching for the live apk dependency
// source.
//
// Three backends are available: a file-based cache for normal CLI usage, a
// Redis-backed cache for shared deployments of the HTTP API, and a null
// cache that disables caching entirely. All backends store opaque byte
// payloads under string keys with an optional TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores byte payloads under string keys with optional expiry.
type Cache interface {
	// Get retrieves the payload for key. The second return value reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
