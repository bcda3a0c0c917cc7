package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkInfoStore_SetGetRoundTrip(t *testing.T) {
	s := NewWorkInfoStore()
	info := WorkInfo{
		WorkID:          "12345678",
		WorkTimestamp:   NowTimestamp(time.Now()),
		WorkDescription: "desc",
		WorkSummarize:   "sum",
	}
	s.Set(info)

	got, ok := s.Get("12345678")
	require.True(t, ok)
	assert.Equal(t, info.WorkDescription, got.WorkDescription)
}

func TestWorkInfoStore_GetReturnsIndependentCopy(t *testing.T) {
	s := NewWorkInfoStore()
	forest := []*Task{tree("a", "A", StatusTodo)}
	s.Set(WorkInfo{WorkID: "12345678", WorkTasks: forest})

	forest[0].Status = StatusDone // mutate the caller's copy afterward

	got, ok := s.Get("12345678")
	require.True(t, ok)
	assert.Equal(t, StatusTodo, got.WorkTasks[0].Status, "stored snapshot must be unaffected")
}

func TestWorkInfoStore_EvictsAtCapacityTen(t *testing.T) {
	s := NewWorkInfoStore()
	for i := 1; i <= 12; i++ {
		s.Set(WorkInfo{WorkID: workIDFor(i), WorkDescription: workIDFor(i)})
	}

	assert.Equal(t, 10, s.Len())
	_, ok := s.Get(workIDFor(1))
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = s.Get(workIDFor(11))
	assert.True(t, ok)
}

func TestWorkInfoStore_RecentListMostRecentFirst(t *testing.T) {
	s := NewWorkInfoStore()
	s.Set(WorkInfo{WorkID: "10000001", WorkDescription: "first"})
	s.Set(WorkInfo{WorkID: "10000002", WorkDescription: "second"})

	list := s.RecentList()

	require.Len(t, list, 2)
	assert.Equal(t, "10000002", list[0].WorkID)
	assert.Equal(t, "10000001", list[1].WorkID)
}

func TestWorkInfoStore_OverwriteKeepsSingleEntry(t *testing.T) {
	s := NewWorkInfoStore()
	s.Set(WorkInfo{WorkID: "10000001", WorkDescription: "v1"})
	s.Set(WorkInfo{WorkID: "10000001", WorkDescription: "v2"})

	assert.Equal(t, 1, s.Len())
	got, ok := s.Get("10000001")
	require.True(t, ok)
	assert.Equal(t, "v2", got.WorkDescription)
}

// workIDFor builds a distinct, deterministic 8-digit-shaped id for
// eviction-order tests, without touching the random generator.
func workIDFor(i int) string {
	return fmt.Sprintf("1%07d", i)
}
