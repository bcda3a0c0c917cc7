// Package checklist implements the six tools exposed by this server:
// update_tasks, mark_task_as_done, get_all_tasks, save_current_work_info,
// get_recent_works_info, get_work_by_id. Each handler validates its
// arguments, resolves the calling namespace from ctx, and dispatches into
// that namespace's stores.
package checklist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/checklistmcp/checklistmcp/internal/mcp"
	"github.com/checklistmcp/checklistmcp/internal/store"
	"github.com/checklistmcp/checklistmcp/internal/validation"
)

// --- update_tasks ---

type updateTasksParams struct {
	SessionID string        `json:"sessionId"`
	Path      string        `json:"path,omitempty"`
	Tasks     []*store.Task `json:"tasks"`
}

// UpdateTasks replaces the subtree at a path with a submitted task list.
type UpdateTasks struct {
	registry *store.Registry
}

func NewUpdateTasks(registry *store.Registry) *UpdateTasks {
	return &UpdateTasks{registry: registry}
}

func (t *UpdateTasks) Name() string { return "update_tasks" }
func (t *UpdateTasks) Description() string {
	return "Replace the task tree at a path (default the whole tree) for a session with a new list of tasks."
}
func (t *UpdateTasks) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "sessionId": {"type": "string", "description": "Session identifier"},
    "path": {"type": "string", "description": "Path to the subtree to replace, e.g. \"/parentTaskId\" (default \"/\")"},
    "tasks": {
      "type": "array",
      "description": "Task nodes to store at path",
      "items": {
        "type": "object",
        "properties": {
          "taskId": {"type": "string"},
          "description": {"type": "string"},
          "status": {"type": "string", "enum": ["TODO", "DONE"]},
          "children": {"type": "array", "items": {"type": "object"}}
        },
        "required": ["taskId", "description"]
      }
    }
  },
  "required": ["sessionId", "tasks"]
}`)
}

func (t *UpdateTasks) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p updateTasksParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errInvalidParams(err), nil
	}

	sessionID, verr := validation.SessionID(p.SessionID)
	if verr != nil {
		return errResult(verr), nil
	}
	_, segments, verr := validation.Path(p.Path)
	if verr != nil {
		return errResult(verr), nil
	}
	if verr := validation.TaskTree(p.Tasks); verr != nil {
		return errResult(verr), nil
	}

	store.NormalizeSubmission(p.Tasks)

	ns := t.registry.Get(mcp.NamespaceFrom(ctx))
	updated := ns.Sessions.UpdateForest(sessionID, func(current []*store.Task) []*store.Task {
		return store.UpdateAtPath(current, segments, p.Tasks)
	})

	return &mcp.ToolsCallResult{
		Content: []mcp.ContentBlock{
			mcp.TextContent(fmt.Sprintf("Successfully updated %d task(s) at path %q for session %q.", len(p.Tasks), pathOrRoot(p.Path), sessionID)),
			mcp.TextContent(store.FormatTree(updated)),
		},
	}, nil
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// --- mark_task_as_done ---

type markTaskAsDoneParams struct {
	SessionID string `json:"sessionId"`
	TaskID    string `json:"taskId"`
}

// MarkTaskAsDone sets a single task's status to DONE by id.
type MarkTaskAsDone struct {
	registry *store.Registry
}

func NewMarkTaskAsDone(registry *store.Registry) *MarkTaskAsDone {
	return &MarkTaskAsDone{registry: registry}
}

func (t *MarkTaskAsDone) Name() string { return "mark_task_as_done" }
func (t *MarkTaskAsDone) Description() string {
	return "Mark a task DONE by taskId, anywhere in a session's task tree."
}
func (t *MarkTaskAsDone) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "sessionId": {"type": "string", "description": "Session identifier"},
    "taskId": {"type": "string", "description": "Task identifier to mark done"}
  },
  "required": ["sessionId", "taskId"]
}`)
}

func (t *MarkTaskAsDone) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p markTaskAsDoneParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errInvalidParams(err), nil
	}

	sessionID, verr := validation.SessionID(p.SessionID)
	if verr != nil {
		return errResult(verr), nil
	}
	taskID, verr := validation.TaskID(p.TaskID)
	if verr != nil {
		return errResult(verr), nil
	}

	ns := t.registry.Get(mcp.NamespaceFrom(ctx))
	entry, ok := ns.Sessions.Get(sessionID)
	if !ok {
		return errResult(validation.NotFound(validation.SessionNotFound, "no session found with sessionId %q", sessionID)), nil
	}

	updated, found := store.MarkDone(entry.Forest, taskID)
	if !found {
		return errResult(validation.NotFound(validation.TaskNotFound, "no task found with taskId %q in session %q", taskID, sessionID)), nil
	}
	ns.Sessions.UpdateForest(sessionID, func([]*store.Task) []*store.Task { return updated })

	return &mcp.ToolsCallResult{
		Content: []mcp.ContentBlock{
			mcp.TextContent(fmt.Sprintf("Successfully marked task %q as done for session %q.", taskID, sessionID)),
			mcp.TextContent(store.FormatTree(updated)),
		},
	}, nil
}

// --- get_all_tasks ---

type getAllTasksParams struct {
	SessionID string `json:"sessionId"`
}

// GetAllTasks renders the full task tree for a session.
type GetAllTasks struct {
	registry *store.Registry
}

func NewGetAllTasks(registry *store.Registry) *GetAllTasks {
	return &GetAllTasks{registry: registry}
}

func (t *GetAllTasks) Name() string { return "get_all_tasks" }
func (t *GetAllTasks) Description() string {
	return "Render the full task tree for a session as an ASCII tree."
}
func (t *GetAllTasks) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "sessionId": {"type": "string", "description": "Session identifier"}
  },
  "required": ["sessionId"]
}`)
}

func (t *GetAllTasks) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getAllTasksParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errInvalidParams(err), nil
	}

	sessionID, verr := validation.SessionID(p.SessionID)
	if verr != nil {
		return errResult(verr), nil
	}

	ns := t.registry.Get(mcp.NamespaceFrom(ctx))
	entry, ok := ns.Sessions.Get(sessionID)
	if !ok {
		return &mcp.ToolsCallResult{
			Content: []mcp.ContentBlock{
				mcp.TextContent(fmt.Sprintf("No tasks found for session %s.", sessionID)),
			},
		}, nil
	}

	return &mcp.ToolsCallResult{
		Content: []mcp.ContentBlock{
			mcp.TextContent(store.FormatTree(entry.Forest)),
		},
	}, nil
}

// errResult formats a validation.Error as the handler's single-part error
// text, "Error: <Kind>: <message>", per the failure-model contract.
func errResult(verr *validation.Error) *mcp.ToolsCallResult {
	return mcp.ErrorResult(fmt.Sprintf("Error: %s", verr.Error()))
}

// errInvalidParams formats a params-unmarshal failure through the same
// "Error: " prefix as errResult, so every rejected-input path reads the same
// regardless of whether the rejection happened before or after unmarshaling.
func errInvalidParams(err error) *mcp.ToolsCallResult {
	return mcp.ErrorResult(fmt.Sprintf("Error: invalid parameters: %v", err))
}
