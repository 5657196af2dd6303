// Package cache provides byte-level caching for solve results.
//
// A [Cache] stores opaque values under string keys with an optional TTL.
// Three backends are provided:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files under a directory (CLI use)
//   - [RedisCache] shares entries between processes (server use)
//
// Keys are produced by a [Keyer] so that every option which can change a
// result is part of the key. Callers treat the cache as best-effort: a
// failing backend degrades to a miss.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey returns the key for the solve of an input with the given hash.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts holds the solve options that affect the cached result.
//
// Workers is included because the partitioning decides which of several
// equally long chains is reported in parallel mode.
type ResultKeyOpts struct {
	Mode    string `json:"mode"`
	Workers int    `json:"workers,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	if opts.Mode != "parallel" {
		opts.Workers = 0
	}
	return hashKey("result", inputHash, opts)
}
