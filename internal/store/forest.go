// Package store implements the in-memory task forest and work-info engine:
// the LRU-bounded namespace registry, the per-namespace session and
// work-info stores, the path-based tree update algorithm, and the ASCII
// tree renderer. No component outside this package mutates a forest or a
// work-info record directly.
package store

import "strings"

// Status is the lifecycle state of a single Task.
type Status string

const (
	StatusTodo Status = "TODO"
	StatusDone Status = "DONE"
)

// Task is one node of a task forest. Children is nil for a leaf.
type Task struct {
	TaskID      string  `json:"taskId"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	Children    []*Task `json:"children,omitempty"`
}

// applyDefaultStatus recursively sets Status to TODO wherever it was left
// empty by the caller. Submitted payloads are not required to specify a
// status; the zero value normalizes to TODO.
func applyDefaultStatus(tasks []*Task) {
	for _, t := range tasks {
		if t.Status == "" {
			t.Status = StatusTodo
		}
		applyDefaultStatus(t.Children)
	}
}

// ParsePath splits a path into its taskId segments. Leading/trailing
// slashes are stripped, consecutive slashes collapse, and empty segments
// are dropped. ParsePath does not validate segment contents; callers
// validate the raw path string first.
func ParsePath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// UpdateAtPath returns a new forest with the node addressed by segments
// having its Children replaced by newChildren. An empty segments list
// replaces the whole forest. If any segment fails to resolve against the
// current forest, the original forest is returned unchanged — this is a
// silent no-op, not an error (see the path-resolution design note).
func UpdateAtPath(root []*Task, segments []string, newChildren []*Task) []*Task {
	if len(segments) == 0 {
		return newChildren
	}

	idx := findChildIndex(root, segments[0])
	if idx == -1 {
		return root
	}

	if len(segments) == 1 {
		updated := cloneShallow(root)
		updated[idx] = cloneNodeWithChildren(root[idx], newChildren)
		return updated
	}

	updatedChild := UpdateAtPath(root[idx].Children, segments[1:], newChildren)
	if sameSlice(updatedChild, root[idx].Children) {
		return root
	}
	updated := cloneShallow(root)
	updated[idx] = cloneNodeWithChildren(root[idx], updatedChild)
	return updated
}

func findChildIndex(nodes []*Task, taskID string) int {
	for i, n := range nodes {
		if n.TaskID == taskID {
			return i
		}
	}
	return -1
}

func cloneShallow(nodes []*Task) []*Task {
	out := make([]*Task, len(nodes))
	copy(out, nodes)
	return out
}

func cloneNodeWithChildren(n *Task, children []*Task) *Task {
	return &Task{
		TaskID:      n.TaskID,
		Description: n.Description,
		Status:      n.Status,
		Children:    children,
	}
}

func sameSlice(a, b []*Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindByID does a depth-first search of the forest for the first node
// whose TaskID equals id.
func FindByID(root []*Task, id string) *Task {
	for _, n := range root {
		if n.TaskID == id {
			return n
		}
		if found := FindByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// MarkDone returns a new forest in which the node with the given id (if
// any) has Status set to DONE. Untouched subtrees are aliased, not copied;
// the node itself and its ancestors are freshly allocated. Descendants of
// the marked node are left exactly as they were. Reports whether a node
// was found and marked.
func MarkDone(root []*Task, id string) ([]*Task, bool) {
	out := make([]*Task, len(root))
	found := false
	for i, n := range root {
		if found {
			out[i] = n
			continue
		}
		if n.TaskID == id {
			out[i] = &Task{
				TaskID:      n.TaskID,
				Description: n.Description,
				Status:      StatusDone,
				Children:    n.Children,
			}
			found = true
			continue
		}
		updatedChildren, childFound := MarkDone(n.Children, id)
		if childFound {
			out[i] = &Task{
				TaskID:      n.TaskID,
				Description: n.Description,
				Status:      n.Status,
				Children:    updatedChildren,
			}
			found = true
			continue
		}
		out[i] = n
	}
	if !found {
		return root, false
	}
	return out, true
}

// DeepCopyForest returns a structurally independent copy of root, safe to
// embed in a work-info snapshot: subsequent mutation of the originating
// forest never touches the copy.
func DeepCopyForest(root []*Task) []*Task {
	if root == nil {
		return nil
	}
	out := make([]*Task, len(root))
	for i, n := range root {
		out[i] = &Task{
			TaskID:      n.TaskID,
			Description: n.Description,
			Status:      n.Status,
			Children:    DeepCopyForest(n.Children),
		}
	}
	return out
}

// FormatTree renders a forest as an ASCII tree. An empty forest renders as
// the literal string "No tasks".
func FormatTree(root []*Task) string {
	if len(root) == 0 {
		return "No tasks"
	}
	var b strings.Builder
	writeTree(&b, root, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, nodes []*Task, indent string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch := "├── "
		childIndent := indent + "│   "
		if last {
			branch = "└── "
			childIndent = indent + "    "
		}
		symbol := "○"
		if n.Status == StatusDone {
			symbol = "✓"
		}
		b.WriteString(indent)
		b.WriteString(branch)
		b.WriteString(symbol)
		b.WriteString(" ")
		b.WriteString(n.TaskID)
		b.WriteString(": ")
		b.WriteString(n.Description)
		b.WriteString("\n")
		writeTree(b, n.Children, childIndent)
	}
}

// CountTopLevel returns len(tasks); a tiny helper kept for readability at
// call sites that report a top-level task count.
func CountTopLevel(tasks []*Task) int {
	return len(tasks)
}

// NormalizeSubmission applies the default-TODO-status rule to a freshly
// decoded submission, in place.
func NormalizeSubmission(tasks []*Task) {
	applyDefaultStatus(tasks)
}

// CollectTaskIDs gathers every TaskID in the subtree, in depth-first order.
func CollectTaskIDs(tasks []*Task, out *[]string) {
	for _, t := range tasks {
		*out = append(*out, t.TaskID)
		CollectTaskIDs(t.Children, out)
	}
}
