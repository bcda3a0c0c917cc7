package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultNamespacePreCreated(t *testing.T) {
	r := NewRegistry(2, 10)

	assert.Equal(t, 1, r.Len())
	ns := r.Get(DefaultNamespace)
	require.NotNil(t, ns)
}

func TestRegistry_EmptyNameIsDefault(t *testing.T) {
	r := NewRegistry(2, 10)
	assert.Same(t, r.Get(DefaultNamespace), r.Get(""))
}

func TestRegistry_CreatesOnFirstUse(t *testing.T) {
	r := NewRegistry(2, 10)
	ns := r.Get("team-a")
	require.NotNil(t, ns)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_EvictsLeastRecentlyAddressedNonDefault(t *testing.T) {
	r := NewRegistry(2, 10)
	r.Get("team-a")
	r.Get("team-b")
	r.Get("team-a") // touch, so team-b becomes the eviction candidate
	r.Get("team-c") // evicts team-b

	assert.Equal(t, 3, r.Len()) // default, team-a, team-c

	// team-b is gone: addressing it again creates a fresh, empty namespace
	ns := r.Get("team-b")
	assert.Equal(t, 0, ns.Sessions.Len())
}

func TestRegistry_DefaultNeverEvicted(t *testing.T) {
	r := NewRegistry(1, 10)
	r.Get("team-a") // fills the one non-default slot
	r.Get("team-b") // evicts team-a, not default

	ns := r.Get(DefaultNamespace)
	require.NotNil(t, ns)
	assert.Equal(t, 2, r.Len())
}
