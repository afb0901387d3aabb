// Package cache provides the byte cache used by the pipeline to skip
// re-parsing unchanged workbooks and re-rendering unchanged layouts.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (--no-cache).
//   - [FileCache] keeps entries as JSON files under the user cache directory.
//   - [RedisCache] shares entries between API server instances.
//
// Keys are built by a [Keyer] so that every input affecting an entry (source
// bytes, sheet name, export format, indentation) is part of the key.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok=false and a nil error; an error means the
// backend itself failed.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes per entry kind.
const (
	// TTLRecords applies to parsed workbook contents. The key includes the
	// source hash, so entries never go stale; the TTL only bounds disk use.
	TTLRecords = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered export artifacts.
	TTLArtifact = 24 * time.Hour
)

// NullCache is the --no-cache backend: Set discards, Get always misses.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
