package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetExpire(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	c.Set("site:slug:acme", "owner-1")
	v, ok := c.GetValue("site:slug:acme")
	require.True(t, ok)
	assert.Equal(t, "owner-1", v)

	c.Set("short", 1, -time.Second)
	_, ok = c.GetValue("short")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	c.Set("site:slug:acme", 1)
	c.Set("tab:1", 2)

	c.Delete("site:slug:acme")
	_, ok := c.GetValue("site:slug:acme")
	assert.False(t, ok)
	_, ok = c.GetValue("tab:1")
	assert.True(t, ok)
}

func TestTouchExtendsLiveItems(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	c.Set("a", 1, time.Millisecond)
	assert.True(t, c.Touch("a"))
	time.Sleep(5 * time.Millisecond)
	_, ok := c.GetValue("a")
	assert.True(t, ok)

	assert.False(t, c.Touch("missing"))
}

func TestSweepCallsOnEvict(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	var evicted []string
	c.OnEvict(func(key string, _ any) { evicted = append(evicted, key) })
	c.Set("old", 1, -time.Second)
	c.Set("fresh", 2)

	c.sweep()
	assert.Equal(t, []string{"old"}, evicted)
	assert.Len(t, c.items, 1)
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	require.NoError(t, c.Marshal("k", map[string]int{"n": 3}))
	var out map[string]int
	found, err := c.Unmarshal("k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, out["n"])

	found, err = c.Unmarshal("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
