package validation

import (
	"fmt"

	"github.com/checklistmcp/checklistmcp/internal/store"
)

// TaskTree walks a submitted forest depth-first, validating every node's
// taskId and description and collecting every taskId seen. It returns a
// DuplicateTaskId error naming the first id seen twice, anywhere in the
// subtree — update_tasks rejects the whole submission in that case, not
// just the offending node.
func TaskTree(tasks []*store.Task) *Error {
	seen := make(map[string]struct{})
	return walkTaskTree(tasks, seen)
}

func walkTaskTree(tasks []*store.Task, seen map[string]struct{}) *Error {
	for _, t := range tasks {
		if _, terr := TaskID(t.TaskID); terr != nil {
			return terr
		}
		if _, derr := Description(t.Description); derr != nil {
			return derr
		}
		if _, dup := seen[t.TaskID]; dup {
			return newError(DuplicateTaskID, "duplicate taskId %q in submitted tasks", t.TaskID)
		}
		seen[t.TaskID] = struct{}{}

		if err := walkTaskTree(t.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// NotFound builds the SessionNotFound/TaskNotFound/WorkNotFound error for a
// missing entity, formatted the way handlers surface it.
func NotFound(kind Kind, format string, args ...any) *Error {
	if kind != SessionNotFound && kind != TaskNotFound && kind != WorkNotFound {
		panic(fmt.Sprintf("validation.NotFound: unsupported kind %q", kind))
	}
	return newError(kind, format, args...)
}
