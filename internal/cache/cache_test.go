// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemory()

	c.Set("k", 42)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestMemoryCache_Get_Absent(t *testing.T) {
	c := NewMemory()

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCache_Invalidate_DropsValueAndNotifies(t *testing.T) {
	c := NewMemory()
	c.Set("k", 1)

	var keys []string
	c.OnInvalidate(func(key string) { keys = append(keys, key) })

	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, []string{"k"}, keys)
}

func TestMemoryCache_Invalidate_AbsentKeyStillNotifies(t *testing.T) {
	c := NewMemory()

	var keys []string
	c.OnInvalidate(func(key string) { keys = append(keys, key) })

	// Staleness is a property of the key, not of the stored value.
	c.Invalidate("never-set")

	assert.Equal(t, []string{"never-set"}, keys)
}

func TestMemoryCache_InvalidateAll_NotifiesPerDroppedKey(t *testing.T) {
	c := NewMemory()
	c.Set("a", 1)
	c.Set("b", 2)

	var keys []string
	c.OnInvalidate(func(key string) { keys = append(keys, key) })

	c.InvalidateAll()

	assert.ElementsMatch(t, []string{"a", "b"}, keys)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestMemoryCache_Unsubscribe(t *testing.T) {
	c := NewMemory()

	calls := 0
	unsubscribe := c.OnInvalidate(func(string) { calls++ })

	c.Invalidate("k")
	unsubscribe()
	c.Invalidate("k")

	assert.Equal(t, 1, calls)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "lists", ListIndexKey())
	assert.Equal(t, "list:l1", ListDetailKey("l1"))
}
