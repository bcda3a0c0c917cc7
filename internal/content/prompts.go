// Package content provides MCP prompts and resources describing the
// checklist engine's tool surface.
package content

import "github.com/checklistmcp/checklistmcp/internal/mcp"

// --- start-checklist prompt ---

// StartChecklistPrompt guides an LLM through using the checklist tools to
// plan and track a unit of work.
type StartChecklistPrompt struct{}

func (p *StartChecklistPrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "start-checklist",
		Description: "Interactive guide for breaking a task into a tracked checklist and recording a work summary.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *StartChecklistPrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for planning and tracking a checklist of tasks",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(startChecklistGuide),
			},
		},
	}, nil
}

const startChecklistGuide = `# Start a Checklist - Interactive Guide

You are helping a user break a piece of work into a tracked, hierarchical checklist.

## Workflow Overview

1. Break the work into tasks (and subtasks where useful).
2. Submit the tree with ` + "`update_tasks`" + `.
3. As each task finishes, mark it done with ` + "`mark_task_as_done`" + `.
4. Check progress at any time with ` + "`get_all_tasks`" + `.
5. When the work concludes, save a summary with ` + "`save_current_work_info`" + `.

## Step 1: Break Down the Work

Decompose the request into concrete, checkable steps. Nest subtasks under a
parent when a step naturally has its own sub-steps (e.g. "Write tests" under
"Implement feature X"). Each task needs:

- taskId: short, unique across the whole submitted tree (e.g. "1", "1.1", "auth")
- description: one sentence describing what "done" means for this task

## Step 2: Submit the Tree

Call ` + "`update_tasks`" + ` with:
- sessionId: a stable identifier for this unit of work
- path (optional): "/" for the whole tree, or "/parentTaskId" to replace
  just one subtree
- tasks: the array of task nodes for that path

Tasks omitted from a submission are removed from that path; tasks elsewhere
in the tree are untouched.

## Step 3: Track Progress

As work completes, call ` + "`mark_task_as_done`" + ` with sessionId and
taskId. Use ` + "`get_all_tasks`" + ` to render the current tree and confirm
status before reporting progress to the user.

## Step 4: Record a Summary

When the work is done, call ` + "`save_current_work_info`" + ` with:
- work_description: a short title for what was done
- work_summarize: the detailed summary
- sessionId (optional): associates the saved work with this session's task tree

Recent work can be listed with ` + "`get_recent_works_info`" + ` and fetched
in full with ` + "`get_work_by_id`" + `.

## Common Mistakes

- Reusing a taskId anywhere in one submission (each submission rejects duplicates)
- Marking a parent done without marking its children — each task's status is
  independent; only leaf-level completion is meaningful to the user
- Forgetting to call ` + "`save_current_work_info`" + ` at the end, losing the
  summary once the session is evicted

## Start Now!

Ask the user what they want to accomplish, then break it into tasks and
submit them with ` + "`update_tasks`" + `.
`
