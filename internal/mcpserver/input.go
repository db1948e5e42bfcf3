package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasgen/descriptor"
	"github.com/erraggy/oasgen/internal/options"
)

// manifestInput represents the two ways a handler manifest can be provided to
// a tool. Exactly one of File or Content must be set.
type manifestInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a handler manifest on disk (YAML or JSON)"`
	Content string `json:"content,omitempty" jsonschema:"Inline handler manifest content (YAML or JSON)"`
}

// cacheEntry holds a resolved API with LRU ordering and TTL expiry.
type cacheEntry struct {
	api       *descriptor.API
	touchedAt time.Time
	expiresAt time.Time
}

// manifestCacheStore caches resolved manifests for the server session.
// File inputs are keyed by (absolutePath, modTime) and content inputs by a
// SHA-256 hash, so edits to a file on disk invalidate its entry.
type manifestCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var manifestCache = &manifestCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached API or nil. Expired entries are removed on access.
func (c *manifestCacheStore) get(key string) *descriptor.API {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.touchedAt = time.Now()
	return e.api
}

// putWithTTL stores an API, evicting the least recently used entry when full.
func (c *manifestCacheStore) putWithTTL(key string, api *descriptor.API, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{api: api, touchedAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.touchedAt.Before(oldest) {
				oldestKey, oldest = k, e.touchedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *manifestCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper periodically removes expired entries until ctx is cancelled.
// Only the first call spawns a sweeper.
func (c *manifestCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *manifestCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *manifestCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns the cache key for in, or "" when it cannot be cached.
func makeCacheKey(in manifestInput) string {
	switch {
	case in.File != "":
		abs, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve loads the manifest from whichever input was provided, consulting
// the cache first.
func (in manifestInput) resolve() (*descriptor.API, error) {
	if err := options.ValidateSingleInputSource(
		"exactly one of file or content must be provided (got none)",
		"exactly one of file or content must be provided (got both)",
		in.File != "", in.Content != "",
	); err != nil {
		return nil, err
	}
	if in.Content != "" && int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASGEN_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(in)
	}
	if key != "" {
		if api := manifestCache.get(key); api != nil {
			return api, nil
		}
	}

	var (
		api *descriptor.API
		err error
	)
	if in.File != "" {
		api, err = descriptor.LoadFile(in.File)
	} else {
		api, err = descriptor.LoadBytes([]byte(in.Content), "content")
	}
	if err != nil {
		return nil, err
	}
	if key != "" {
		manifestCache.putWithTTL(key, api, cfg.CacheTTL)
	}
	return api, nil
}
