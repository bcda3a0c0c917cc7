package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_SetGetRoundTrip(t *testing.T) {
	l := NewLRU[string, int](3)
	l.Set("a", 1)

	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	l := NewLRU[string, int](2)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Set("c", 3) // evicts a, the least-recently-touched key

	assert.False(t, l.Has("a"))
	assert.True(t, l.Has("b"))
	assert.True(t, l.Has("c"))
	assert.Equal(t, 2, l.Len())
}

func TestLRU_GetPromotes(t *testing.T) {
	l := NewLRU[string, int](2)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Get("a") // promote a, so b becomes least-recent
	l.Set("c", 3)

	assert.True(t, l.Has("a"))
	assert.False(t, l.Has("b"))
	assert.True(t, l.Has("c"))
}

func TestLRU_HasDoesNotPromote(t *testing.T) {
	l := NewLRU[string, int](2)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Has("a") // must not promote
	l.Set("c", 3)

	assert.False(t, l.Has("a"))
	assert.True(t, l.Has("b"))
}

func TestLRU_UpdateExistingKeyDoesNotGrowSize(t *testing.T) {
	l := NewLRU[string, int](2)
	l.Set("a", 1)
	l.Set("a", 2)

	assert.Equal(t, 1, l.Len())
	v, _ := l.Get("a")
	assert.Equal(t, 2, v)
}

func TestLRU_KeysAndValuesMostRecentFirst(t *testing.T) {
	l := NewLRU[string, int](3)
	l.Set("a", 1)
	l.Set("b", 2)
	l.Set("c", 3)

	assert.Equal(t, []string{"c", "b", "a"}, l.Keys())
	assert.Equal(t, []int{3, 2, 1}, l.Values())
}

func TestLRU_LeastRecent(t *testing.T) {
	l := NewLRU[string, int](3)
	l.Set("a", 1)
	l.Set("b", 2)

	key, ok := l.LeastRecent()
	require.True(t, ok)
	assert.Equal(t, "a", key)
}

func TestLRU_Delete(t *testing.T) {
	l := NewLRU[string, int](3)
	l.Set("a", 1)
	l.Delete("a")

	assert.False(t, l.Has("a"))
	assert.Equal(t, 0, l.Len())
}

func TestLRU_NonPositiveCapacityTreatedAsOne(t *testing.T) {
	l := NewLRU[string, int](0)
	l.Set("a", 1)
	l.Set("b", 2)

	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Has("b"))
}
