package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsManifest = "../../descriptor/testdata/items.yaml"

func TestManifestInput_ResolveFile(t *testing.T) {
	manifestCache.reset()
	api, err := manifestInput{File: itemsManifest}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Items API", api.Info.Title)
	assert.Equal(t, 3, api.HandlerCount())
}

func TestManifestInput_ResolveContent(t *testing.T) {
	manifestCache.reset()
	api, err := manifestInput{Content: "info: {title: Inline, version: '1'}\n"}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Inline", api.Info.Title)
}

func TestManifestInput_ExactlyOne(t *testing.T) {
	_, err := manifestInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")

	_, err = manifestInput{File: "a.yaml", Content: "b"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestManifestInput_FileNotFound(t *testing.T) {
	manifestCache.reset()
	_, err := manifestInput{File: "/nonexistent/manifest.yaml"}.resolve()
	assert.Error(t, err)
	assert.Zero(t, manifestCache.size())
}

func TestManifestInput_InvalidContentNotCached(t *testing.T) {
	manifestCache.reset()
	_, err := manifestInput{Content: "controllers:\n  - handlers: []\n"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controllers[0].name")
	assert.Zero(t, manifestCache.size())
}

func TestManifestInput_InlineSizeLimit(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := manifestInput{Content: strings.Repeat("#", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OASGEN_MAX_INLINE_SIZE")
}

func TestManifestCache_HitOnSameFile(t *testing.T) {
	manifestCache.reset()
	in := manifestInput{File: itemsManifest}

	first, err := in.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, manifestCache.size())

	second, err := in.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second, "expected same pointer from cache hit")
}

func TestManifestCache_MissOnModifiedFile(t *testing.T) {
	manifestCache.reset()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("info: {title: V1}\n"), 0o644))

	in := manifestInput{File: path}
	first, err := in.resolve()
	require.NoError(t, err)
	assert.Equal(t, "V1", first.Info.Title)

	require.NoError(t, os.WriteFile(path, []byte("info: {title: V2}\n"), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := in.resolve()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "V2", second.Info.Title)
}

func TestManifestCache_ContentHash(t *testing.T) {
	manifestCache.reset()
	in := manifestInput{Content: "info: {title: Hash}\n"}

	first, err := in.resolve()
	require.NoError(t, err)
	second, err := in.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestManifestCache_Disabled(t *testing.T) {
	manifestCache.reset()
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = true })

	in := manifestInput{Content: "info: {title: Uncached}\n"}
	first, err := in.resolve()
	require.NoError(t, err)
	second, err := in.resolve()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Zero(t, manifestCache.size())
}

func TestManifestCache_LRUEviction(t *testing.T) {
	store := &manifestCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	store.putWithTTL("a", nil, time.Minute)
	store.putWithTTL("b", nil, time.Minute)
	store.entries["a"].touchedAt = time.Now().Add(-time.Hour)
	store.entries["b"].touchedAt = time.Now().Add(-time.Minute)

	store.putWithTTL("c", nil, time.Minute)

	assert.Equal(t, 2, store.size())
	assert.NotContains(t, store.entries, "a")
	assert.Contains(t, store.entries, "b")
	assert.Contains(t, store.entries, "c")
}

func TestManifestCache_ExpiryAndSweep(t *testing.T) {
	store := &manifestCacheStore{entries: make(map[string]*cacheEntry), maxSize: 10}
	store.putWithTTL("stale", nil, time.Minute)
	store.putWithTTL("fresh", nil, time.Hour)
	store.entries["stale"].expiresAt = time.Now().Add(-time.Second)

	store.sweep()

	assert.Equal(t, 1, store.size())
	assert.Contains(t, store.entries, "fresh")
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(manifestInput{}))
	assert.Empty(t, makeCacheKey(manifestInput{File: "/nonexistent/manifest.yaml"}))
	assert.True(t, strings.HasPrefix(makeCacheKey(manifestInput{File: itemsManifest}), "file:"))

	a := makeCacheKey(manifestInput{Content: "x"})
	assert.True(t, strings.HasPrefix(a, "content:"))
	assert.Equal(t, a, makeCacheKey(manifestInput{Content: "x"}))
	assert.NotEqual(t, a, makeCacheKey(manifestInput{Content: "y"}))
}
