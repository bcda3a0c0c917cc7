package checklist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/checklistmcp/checklistmcp/internal/mcp"
	"github.com/checklistmcp/checklistmcp/internal/store"
	"github.com/checklistmcp/checklistmcp/internal/validation"
)

// --- save_current_work_info ---

type saveCurrentWorkInfoParams struct {
	WorkDescription string `json:"work_description"`
	WorkSummarize   string `json:"work_summarize"`
	SessionID       string `json:"sessionId,omitempty"`
}

// SaveCurrentWorkInfo snapshots a description of completed work, optionally
// linked to a session's current task tree.
type SaveCurrentWorkInfo struct {
	registry *store.Registry
	workIDs  *store.WorkIDGenerator
}

func NewSaveCurrentWorkInfo(registry *store.Registry, workIDs *store.WorkIDGenerator) *SaveCurrentWorkInfo {
	return &SaveCurrentWorkInfo{registry: registry, workIDs: workIDs}
}

func (t *SaveCurrentWorkInfo) Name() string { return "save_current_work_info" }
func (t *SaveCurrentWorkInfo) Description() string {
	return "Save a summary of completed work, optionally capturing a snapshot of a session's current task tree."
}
func (t *SaveCurrentWorkInfo) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "work_description": {"type": "string", "description": "Short title for this unit of work"},
    "work_summarize": {"type": "string", "description": "Detailed summary of what was done"},
    "sessionId": {"type": "string", "description": "Session to associate and snapshot tasks from, if any"}
  },
  "required": ["work_description", "work_summarize"]
}`)
}

func (t *SaveCurrentWorkInfo) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p saveCurrentWorkInfoParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errInvalidParams(err), nil
	}

	desc, verr := validation.WorkDescription(p.WorkDescription)
	if verr != nil {
		return errResult(verr), nil
	}
	summary, verr := validation.WorkSummarize(p.WorkSummarize)
	if verr != nil {
		return errResult(verr), nil
	}
	var sessionID string
	if p.SessionID != "" {
		sessionID, verr = validation.SessionID(p.SessionID)
		if verr != nil {
			return errResult(verr), nil
		}
	}

	ns := t.registry.Get(mcp.NamespaceFrom(ctx))

	var forest []*store.Task
	var haveForest bool
	workID := ""
	if sessionID != "" {
		if entry, ok := ns.Sessions.Get(sessionID); ok {
			if entry.HasAssocWork {
				workID = entry.AssocWorkID
			}
			if len(entry.Forest) > 0 {
				forest = store.DeepCopyForest(entry.Forest)
				haveForest = true
			}
		}
	}

	if workID == "" {
		id, err := t.workIDs.Generate()
		if err != nil {
			return errResult(validation.IDExhaustionError(err)), nil
		}
		workID = id
	}
	if sessionID != "" {
		ns.Sessions.AssociateWorkID(sessionID, workID)
	}

	info := store.WorkInfo{
		WorkID:          workID,
		WorkTimestamp:   store.NowTimestamp(time.Now()),
		WorkDescription: desc,
		WorkSummarize:   summary,
		SessionID:       sessionID,
		WorkTasks:       forest,
	}
	ns.WorkInfos.Set(info)

	content := []mcp.ContentBlock{
		mcp.TextContent(fmt.Sprintf("Successfully saved work information with workId: %s", workID)),
	}
	switch {
	case sessionID == "":
	case haveForest:
		content = append(content, mcp.TextContent(fmt.Sprintf("Captured a snapshot of %d top-level task(s) from session %q.", store.CountTopLevel(forest), sessionID)))
	default:
		content = append(content, mcp.TextContent(fmt.Sprintf("No task tree found for session %q; saved without a task snapshot.", sessionID)))
	}

	return &mcp.ToolsCallResult{Content: content}, nil
}

// --- get_recent_works_info ---

// GetRecentWorksInfo lists the most recently saved work-info entries.
type GetRecentWorksInfo struct {
	registry *store.Registry
}

func NewGetRecentWorksInfo(registry *store.Registry) *GetRecentWorksInfo {
	return &GetRecentWorksInfo{registry: registry}
}

func (t *GetRecentWorksInfo) Name() string { return "get_recent_works_info" }
func (t *GetRecentWorksInfo) Description() string {
	return "List the most recently saved work-info entries (workId, timestamp, description only)."
}
func (t *GetRecentWorksInfo) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *GetRecentWorksInfo) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	ns := t.registry.Get(mcp.NamespaceFrom(ctx))
	works := ns.WorkInfos.RecentList()

	body, err := json.MarshalIndent(map[string]any{"works": works}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling recent works: %w", err)
	}

	return &mcp.ToolsCallResult{
		Content: []mcp.ContentBlock{
			mcp.TextContent(string(body)),
			mcp.TextContent("Use get_work_by_id with a workId above to fetch full details."),
		},
	}, nil
}

// --- get_work_by_id ---

type getWorkByIDParams struct {
	WorkID string `json:"workId"`
}

// GetWorkByID fetches one saved work-info entry in full.
type GetWorkByID struct {
	registry *store.Registry
}

func NewGetWorkByID(registry *store.Registry) *GetWorkByID {
	return &GetWorkByID{registry: registry}
}

func (t *GetWorkByID) Name() string { return "get_work_by_id" }
func (t *GetWorkByID) Description() string {
	return "Fetch a saved work-info entry in full, including its summary and any task snapshot."
}
func (t *GetWorkByID) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "workId": {"type": "string", "description": "8-digit work identifier"}
  },
  "required": ["workId"]
}`)
}

func (t *GetWorkByID) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getWorkByIDParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errInvalidParams(err), nil
	}

	workID, verr := validation.WorkID(p.WorkID)
	if verr != nil {
		return errResult(verr), nil
	}

	ns := t.registry.Get(mcp.NamespaceFrom(ctx))
	info, ok := ns.WorkInfos.Get(workID)
	if !ok {
		return errResult(validation.NotFound(validation.WorkNotFound, "no work info found with workId %q", workID)), nil
	}

	return mcp.JSONResult(info)
}
