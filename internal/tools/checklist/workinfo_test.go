package checklist

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checklistmcp/checklistmcp/internal/store"
)

func newWorkTools(reg *store.Registry) (*SaveCurrentWorkInfo, *GetRecentWorksInfo, *GetWorkByID) {
	ids := store.NewWorkIDGenerator()
	return NewSaveCurrentWorkInfo(reg, ids), NewGetRecentWorksInfo(reg), NewGetWorkByID(reg)
}

// TestScenarioS4 mirrors the snapshot-isolation scenario: a saved work-info
// entry's task snapshot must be unaffected by a later mark-done on the
// session it was captured from.
func TestScenarioS4_SnapshotIsolation(t *testing.T) {
	reg := newTestRegistry(10)
	update := NewUpdateTasks(reg)
	mark := NewMarkTaskAsDone(reg)
	save, _, getByID := newWorkTools(reg)
	ctx := context.Background()

	_, err := update.Execute(ctx, callJSON(t, map[string]any{
		"sessionId": "s3",
		"tasks":     []map[string]any{{"taskId": "t", "description": "T", "status": "TODO"}},
	}))
	require.NoError(t, err)

	res, err := save.Execute(ctx, callJSON(t, map[string]any{
		"work_description": "desc",
		"work_summarize":   "sum",
		"sessionId":        "s3",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	_, err = mark.Execute(ctx, callJSON(t, map[string]any{"sessionId": "s3", "taskId": "t"}))
	require.NoError(t, err)

	workID := extractWorkID(t, res.Content[0].Text)
	got, err := getByID.Execute(ctx, callJSON(t, map[string]any{"workId": workID}))
	require.NoError(t, err)

	var info store.WorkInfo
	require.NoError(t, json.Unmarshal([]byte(got.Content[0].Text), &info))
	require.Len(t, info.WorkTasks, 1)
	assert.Equal(t, store.StatusTodo, info.WorkTasks[0].Status)
}

// TestScenarioS5 mirrors the sessionId-overwrite scenario.
func TestScenarioS5_SessionIDOverwrite(t *testing.T) {
	reg := newTestRegistry(10)
	update := NewUpdateTasks(reg)
	save, recent, _ := newWorkTools(reg)
	ctx := context.Background()

	_, err := update.Execute(ctx, callJSON(t, map[string]any{
		"sessionId": "s4",
		"tasks":     []map[string]any{{"taskId": "t", "description": "T"}},
	}))
	require.NoError(t, err)

	res1, err := save.Execute(ctx, callJSON(t, map[string]any{
		"work_description": "first", "work_summarize": "sum1", "sessionId": "s4",
	}))
	require.NoError(t, err)
	res2, err := save.Execute(ctx, callJSON(t, map[string]any{
		"work_description": "second", "work_summarize": "sum2", "sessionId": "s4",
	}))
	require.NoError(t, err)

	id1 := extractWorkID(t, res1.Content[0].Text)
	id2 := extractWorkID(t, res2.Content[0].Text)
	assert.Equal(t, id1, id2)

	listRes, err := recent.Execute(ctx, callJSON(t, map[string]any{}))
	require.NoError(t, err)
	var payload struct {
		Works []store.RecentWorkInfo `json:"works"`
	}
	require.NoError(t, json.Unmarshal([]byte(listRes.Content[0].Text), &payload))
	require.Len(t, payload.Works, 1)
	assert.Equal(t, id1, payload.Works[0].WorkID)
	assert.Equal(t, "second", payload.Works[0].WorkDescription)
}

// TestScenarioS7 mirrors the work-info eviction-at-capacity-10 scenario.
func TestScenarioS7_WorkInfoEvictionAtCapacityTen(t *testing.T) {
	reg := newTestRegistry(10)
	save, recent, getByID := newWorkTools(reg)
	ctx := context.Background()

	var ids []string
	for i := 1; i <= 12; i++ {
		res, err := save.Execute(ctx, callJSON(t, map[string]any{
			"work_description": "work", "work_summarize": "sum",
		}))
		require.NoError(t, err)
		ids = append(ids, extractWorkID(t, res.Content[0].Text))
	}

	// w1 was evicted: get_work_by_id surfaces this as an in-band error result.
	res, err := getByID.Execute(ctx, callJSON(t, map[string]any{"workId": ids[0]}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "WorkNotFound")

	res, err = getByID.Execute(ctx, callJSON(t, map[string]any{"workId": ids[10]}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	listRes, err := recent.Execute(ctx, callJSON(t, map[string]any{}))
	require.NoError(t, err)
	var payload struct {
		Works []store.RecentWorkInfo `json:"works"`
	}
	require.NoError(t, json.Unmarshal([]byte(listRes.Content[0].Text), &payload))
	require.Len(t, payload.Works, 10)
	// The get_work_by_id call above promoted w11; w12 is the newest save after it.
	assert.Equal(t, ids[10], payload.Works[0].WorkID)
	assert.Equal(t, ids[11], payload.Works[1].WorkID)
}

func TestSaveCurrentWorkInfo_NoSessionNoSnapshot(t *testing.T) {
	reg := newTestRegistry(10)
	save, _, _ := newWorkTools(reg)

	res, err := save.Execute(context.Background(), callJSON(t, map[string]any{
		"work_description": "desc", "work_summarize": "sum",
	}))

	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Len(t, res.Content, 1, "no sessionId means no extra snapshot line")
}

func TestSaveCurrentWorkInfo_SessionWithoutTreeWarns(t *testing.T) {
	reg := newTestRegistry(10)
	save, _, _ := newWorkTools(reg)
	ctx := context.Background()

	// s5 is never created via update_tasks; saving against it has no tree to snapshot.
	res, err := save.Execute(ctx, callJSON(t, map[string]any{
		"work_description": "desc", "work_summarize": "sum", "sessionId": "s5",
	}))

	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[len(res.Content)-1].Text, "No task tree found")
}

func TestGetWorkByID_InvalidShape(t *testing.T) {
	reg := newTestRegistry(10)
	_, _, getByID := newWorkTools(reg)

	res, err := getByID.Execute(context.Background(), callJSON(t, map[string]any{"workId": "not-a-valid-id"}))

	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, res.Content[0].Text, "InvalidWorkId")
}

// extractWorkID pulls the 8-digit workId out of save_current_work_info's
// confirmation text, e.g. "...with workId: 12345678".
func extractWorkID(t *testing.T, text string) string {
	t.Helper()
	const marker = "workId: "
	idx := len(text) - 8
	require.GreaterOrEqual(t, idx, 0)
	require.Contains(t, text, marker)
	return text[idx:]
}
