package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(id, desc string, status Status, children ...*Task) *Task {
	return &Task{TaskID: id, Description: desc, Status: status, Children: children}
}

func TestUpdateAtPath_Root(t *testing.T) {
	root := []*Task{tree("a", "A", StatusTodo)}
	newTasks := []*Task{tree("b", "B", StatusTodo)}

	updated := UpdateAtPath(root, nil, newTasks)

	require.Len(t, updated, 1)
	assert.Equal(t, "b", updated[0].TaskID)
}

func TestUpdateAtPath_Nested(t *testing.T) {
	root := []*Task{
		tree("a", "A", StatusTodo),
		tree("b", "B", StatusTodo, tree("b1", "B1", StatusTodo)),
	}

	updated := UpdateAtPath(root, []string{"b"}, []*Task{tree("b2", "B2", StatusTodo)})

	require.Len(t, updated, 2)
	assert.Equal(t, "a", updated[0].TaskID, "untouched sibling preserved")
	require.Len(t, updated[1].Children, 1)
	assert.Equal(t, "b2", updated[1].Children[0].TaskID)
	// original forest must be unaffected (structural sharing, not mutation)
	assert.Equal(t, "b1", root[1].Children[0].TaskID)
}

func TestUpdateAtPath_UnresolvedSegmentIsNoOp(t *testing.T) {
	root := []*Task{tree("a", "A", StatusTodo)}

	updated := UpdateAtPath(root, []string{"missing"}, []*Task{tree("x", "X", StatusTodo)})

	assert.Equal(t, root, updated)
}

func TestMarkDone_Nested(t *testing.T) {
	root := []*Task{
		tree("a", "A", StatusTodo),
		tree("b", "B", StatusTodo, tree("b1", "B1", StatusTodo)),
	}

	updated, found := MarkDone(root, "b1")

	require.True(t, found)
	assert.Equal(t, StatusTodo, updated[1].Status, "parent unaffected")
	assert.Equal(t, StatusDone, updated[1].Children[0].Status)
	assert.Equal(t, StatusTodo, root[1].Children[0].Status, "original untouched")
}

func TestMarkDone_AlreadyDoneIsIdempotent(t *testing.T) {
	root := []*Task{tree("a", "A", StatusDone)}

	updated, found := MarkDone(root, "a")

	require.True(t, found)
	assert.Equal(t, StatusDone, updated[0].Status)
}

func TestMarkDone_NotFound(t *testing.T) {
	root := []*Task{tree("a", "A", StatusTodo)}

	updated, found := MarkDone(root, "missing")

	assert.False(t, found)
	assert.Equal(t, root, updated)
}

func TestDeepCopyForest_Independent(t *testing.T) {
	root := []*Task{tree("a", "A", StatusTodo, tree("a1", "A1", StatusTodo))}

	dup := DeepCopyForest(root)
	dup[0].Children[0].Status = StatusDone

	assert.Equal(t, StatusTodo, root[0].Children[0].Status)
}

func TestFormatTree_Empty(t *testing.T) {
	assert.Equal(t, "No tasks", FormatTree(nil))
}

func TestFormatTree_Scenario(t *testing.T) {
	root := []*Task{
		tree("a", "A", StatusTodo),
		tree("b", "B", StatusTodo, tree("b1", "B1", StatusTodo)),
	}

	out := FormatTree(root)

	assert.Contains(t, out, "├── ○ a: A")
	assert.Contains(t, out, "└── ○ b: B")
	assert.Contains(t, out, "    └── ○ b1: B1")
}

func TestFormatTree_DoneSymbol(t *testing.T) {
	root := []*Task{tree("a", "A", StatusDone)}
	assert.Contains(t, FormatTree(root), "✓ a: A")
}

func TestNormalizeSubmission_DefaultsStatus(t *testing.T) {
	tasks := []*Task{{TaskID: "a", Description: "A"}}
	NormalizeSubmission(tasks)
	assert.Equal(t, StatusTodo, tasks[0].Status)
}

func TestParsePath(t *testing.T) {
	assert.Nil(t, ParsePath("/"))
	assert.Equal(t, []string{"a", "b"}, ParsePath("/a/b/"))
}

func TestCollectTaskIDs(t *testing.T) {
	root := []*Task{tree("a", "A", StatusTodo, tree("a1", "A1", StatusTodo))}
	var ids []string
	CollectTaskIDs(root, &ids)
	assert.Equal(t, []string{"a", "a1"}, ids)
}
