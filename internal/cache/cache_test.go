package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	require.NoError(t, c.Set("src/main.go", []byte(`{"score":85}`)))

	data, ok := c.Get("src/main.go")
	require.True(t, ok, "expected cache hit")
	assert.Equal(t, `{"score":85}`, string(data))

	_, ok = c.Get("src/other.go")
	assert.False(t, ok, "expected miss for unknown key")
}

func TestCacheHashValidation(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	hash := HashBytes([]byte("package main"))
	require.NoError(t, c.SetWithHash("main.go", hash, []byte("result")))

	_, ok := c.GetWithHash("main.go", hash)
	assert.True(t, ok, "expected hit with matching hash")

	changed := HashBytes([]byte("package main\n// edited"))
	_, ok = c.GetWithHash("main.go", changed)
	assert.False(t, ok, "expected miss with changed hash")
}

func TestCacheDisabled(t *testing.T) {
	c, err := New("", 1, false)
	require.NoError(t, err)

	assert.NoError(t, c.Set("key", []byte("data")))
	_, ok := c.Get("key")
	assert.False(t, ok, "disabled cache should never hit")
	assert.NoError(t, c.Clear())
}

func TestCacheInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	require.NoError(t, c.Set("key", []byte("data")))
	require.NoError(t, c.Invalidate("key"))

	_, ok := c.Get("key")
	assert.False(t, ok, "expected miss after invalidation")
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 1, true)
	require.NoError(t, err)

	require.NoError(t, c.Set("a", []byte("1")))
	require.NoError(t, c.Set("b", []byte("2")))
	require.NoError(t, c.Clear())

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "expected empty cache dir after clear")
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.go")
	require.NoError(t, os.WriteFile(path, []byte("package f"), 0o644))

	h1, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, HashBytes([]byte("package f")), h1)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
