package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	IDs   []string `json:"ids"`
	Score int      `json:"score"`
}

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(Options{InMemory: true, TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKey_DeterministicAndScoped(t *testing.T) {
	a, err := Key("u1", map[string]int{"Italian": 3}, []string{"r1", "r2"})
	require.NoError(t, err)
	b, err := Key("u1", map[string]int{"Italian": 3}, []string{"r1", "r2"})
	require.NoError(t, err)
	c, err := Key("u1", map[string]int{"Italian": 3}, []string{"r2", "r1"})
	require.NoError(t, err)
	d, err := Key("u2", map[string]int{"Italian": 3}, []string{"r1", "r2"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(a, "rec:7531:"), "user segment is hex-encoded")
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t, time.Minute)

	key, err := Key("u1", "ctx")
	require.NoError(t, err)

	var miss entry
	found, err := c.Get(key, &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(key, entry{IDs: []string{"r1"}, Score: 72}))

	var got entry
	found, err = c.Get(key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{IDs: []string{"r1"}, Score: 72}, got)
}

func TestCache_DisabledSkipsWrites(t *testing.T) {
	c := newTestCache(t, 0)
	assert.False(t, c.Enabled())

	require.NoError(t, c.Set("rec:u1:x", entry{Score: 1}))

	var got entry
	found, err := c.Get("rec:u1:x", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_InvalidateUser(t *testing.T) {
	c := newTestCache(t, time.Minute)

	k1, _ := Key("u1", "a")
	k2, _ := Key("u1", "b")
	k3, _ := Key("u10", "a")
	for _, k := range []string{k1, k2, k3} {
		require.NoError(t, c.Set(k, entry{Score: 1}))
	}

	n, err := c.InvalidateUser("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got entry
	found, err := c.Get(k1, &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(k3, &got)
	require.NoError(t, err)
	assert.True(t, found, "u10 shares a string prefix with u1 but must survive")

	n, err = c.InvalidateUser("nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_InvalidateUser_SeparatorInID(t *testing.T) {
	c := newTestCache(t, time.Minute)

	mine, _ := Key("a", "q")
	other, _ := Key("a:b", "q")
	require.NoError(t, c.Set(mine, entry{Score: 1}))
	require.NoError(t, c.Set(other, entry{Score: 2}))

	n, err := c.InvalidateUser("a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var got entry
	found, err := c.Get(other, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, got.Score)
	require.NoError(t, err)
	assert.Zero(t, n)
}
