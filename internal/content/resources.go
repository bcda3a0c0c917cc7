package content

import "github.com/checklistmcp/checklistmcp/internal/mcp"

// --- checklistmcp://data-model resource ---

// DataModelResource exposes the checklist engine's data model as a
// reference resource.
type DataModelResource struct{}

func (r *DataModelResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "checklistmcp://data-model",
		Name:        "Checklist Data Model",
		Description: "Reference of the Task tree, WorkInfo snapshot, and session/namespace model used by this server",
		MimeType:    "text/markdown",
	}
}

func (r *DataModelResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "checklistmcp://data-model",
				MimeType: "text/markdown",
				Text:     dataModelContent,
			},
		},
	}, nil
}

// --- checklistmcp://tool-reference resource ---

// ToolReferenceResource exposes a quick-reference card for all 6 tools.
type ToolReferenceResource struct{}

func (r *ToolReferenceResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "checklistmcp://tool-reference",
		Name:        "Checklist Tool Reference",
		Description: "Quick-reference card for all 6 checklist tools with parameters and usage notes",
		MimeType:    "text/markdown",
	}
}

func (r *ToolReferenceResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "checklistmcp://tool-reference",
				MimeType: "text/markdown",
				Text:     toolReferenceContent,
			},
		},
	}, nil
}

// --- Static content ---

const dataModelContent = `# Checklist Data Model

## Task

A node in a per-session forest of checklist items.

- **taskId** (string, required): unique across one update_tasks submission. 1-20 characters
  from [A-Za-z0-9-_@#$%&+=!.]
- **description** (string, required): 1-1000 characters, what "done" means
- **status** (string): "TODO" or "DONE"; defaults to "TODO" when omitted on submission
- **children** ([]Task, optional): nested subtasks

Tasks form a forest (a top-level array), not a single rooted tree. A path
like "/parentId/childId" addresses a subtree within the forest by walking
taskId segments from the root.

## Session

A namespace-scoped, LRU-bounded slot holding one Task forest and an optional
association with a saved WorkInfo entry. Keyed by sessionId (1-100 chars
from [A-Za-z0-9_-]). Least-recently-touched sessions are evicted once a
namespace's session capacity is exceeded.

## WorkInfo

A snapshot of a completed unit of work, independent of the session it was
taken from — mutating the originating session afterward never changes a
saved WorkInfo.

- **workId** (string): 8 digits, first digit nonzero, generated server-side
- **work_timestamp** (string): UTC, millisecond-precision ISO 8601
- **work_description** (string, required): 1-200 characters
- **work_summarize** (string, required): 1-5000 characters
- **sessionId** (string, optional): the session this snapshot is linked to
- **work_tasks** ([]Task, optional): a deep copy of the linked session's forest

Each namespace keeps at most the 10 most recently saved WorkInfo entries.

## Namespace

An isolation boundary containing its own Session store and WorkInfo store.
"default" is pinned and always present; other namespaces are created on
first use and evicted least-recently-used once the namespace registry's
capacity is exceeded.
`

const toolReferenceContent = `# Checklist Tool Quick Reference

## Task Tools

### update_tasks
Replace the subtree at a path with a new set of tasks.
- **Required**: sessionId (string), tasks ([]Task)
- **Optional**: path (string, default "/")
- **Returns**: confirmation text with the task count at that path

### mark_task_as_done
Mark a single task DONE by id, anywhere in the session's forest.
- **Required**: sessionId (string), taskId (string)
- **Returns**: confirmation text, or a TaskNotFound error if no task with
  that id exists in the session

### get_all_tasks
Render the full task forest for a session as an ASCII tree.
- **Required**: sessionId (string)
- **Returns**: tree text (✓ for DONE, ○ for TODO), "No tasks" if the
  session exists with an empty forest, or
  "No tasks found for session <id>." if the session is absent

## Work Info Tools

### save_current_work_info
Save a snapshot describing a completed unit of work.
- **Required**: work_description (string), work_summarize (string)
- **Optional**: sessionId (string) — recorded on the saved entry; if the
  session already exists, its task forest is snapshotted and the workId is
  associated with it (a later save for that session reuses the workId)
- **Returns**: "Successfully saved work information with workId: <id>",
  plus, when sessionId is given, a line saying whether a task snapshot was
  captured

### get_recent_works_info
List the most recently saved work-info entries in a namespace.
- **Returns**: JSON object {"works": [{workId, work_timestamp, work_description}, ...]},
  most recent first (never includes work_summarize or work_tasks), followed
  by a hint line pointing at get_work_by_id

### get_work_by_id
Fetch one saved work-info entry in full.
- **Required**: workId (string)
- **Returns**: JSON with all fields including work_summarize and, if the
  snapshot was linked to a session, work_tasks
`
