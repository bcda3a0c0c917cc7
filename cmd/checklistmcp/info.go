package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// runInfo handles the "checklistmcp info" subcommand.
// It prints general server information and, with flags, client-specific
// MCP configuration snippets.
func runInfo() error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	opencode := fs.Bool("opencode", false, "show OpenCode MCP client configuration")
	claude := fs.Bool("claude", false, "show Claude Desktop MCP client configuration")
	cursor := fs.Bool("cursor", false, "show Cursor MCP client configuration")
	args := os.Args[2:]
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *opencode:
		printOpenCodeConfig()
	case *claude:
		printClaudeConfig()
	case *cursor:
		printCursorConfig()
	default:
		printGeneralInfo()
	}
	return nil
}

func printGeneralInfo() {
	fmt.Fprintf(os.Stdout, `checklistmcp %s — in-memory checklist MCP server

checklistmcp is a Model Context Protocol (MCP) server that tracks
hierarchical task checklists and work-info summaries entirely in memory,
scoped by session and namespace. Nothing here persists across a process
restart.

TRANSPORT MODES

  stdio (default)
    Communicates over stdin/stdout using JSON-RPC 2.0. Used when launched
    as a subprocess by an MCP client.

  http
    Runs as a standalone HTTP server (MCP Streamable HTTP transport,
    spec 2025-03-26).

    Endpoint:      POST /mcp
    Health check:  GET /health
    Default port:  8787
    Namespace:     optional "namespace" query parameter (default "default")

TOOLS (6)

  Tasks (3):      update_tasks, mark_task_as_done, get_all_tasks
  Work Info (3):  save_current_work_info, get_recent_works_info,
                  get_work_by_id

PROMPTS (1)

  start-checklist   Guide for breaking work into a tracked checklist and
                     recording a summary when it's done

RESOURCES (2)

  checklistmcp://data-model       Task/Session/WorkInfo/Namespace reference
  checklistmcp://tool-reference   Tool usage quick reference

GETTING STARTED

  1. Break your work into tasks, then submit them:
     update_tasks(sessionId, tasks)

  2. Mark tasks done as you finish them:
     mark_task_as_done(sessionId, taskId)

  3. Check progress any time:
     get_all_tasks(sessionId)

  4. When the work concludes, save a summary:
     save_current_work_info(work_description, work_summarize, sessionId)

CLIENT CONFIGURATION

  To see configuration for a specific MCP client, run:

    checklistmcp info --opencode    OpenCode (.opencode.json)
    checklistmcp info --claude      Claude Desktop (claude_desktop_config.json)
    checklistmcp info --cursor      Cursor (.cursor/mcp.json)
`, Version)
}

func printOpenCodeConfig() {
	printStdioConfig("OpenCode", ".opencode.json or opencode.json", `{
  "mcpServers": {
    "checklistmcp": {
      "command": "checklistmcp"
    }
  }
}`)

	printHTTPConfig("OpenCode", ".opencode.json or opencode.json", `{
  "mcpServers": {
    "checklistmcp": {
      "type": "streamable-http",
      "url": "http://your-checklistmcp-server:8787/mcp"
    }
  }
}`)
}

func printClaudeConfig() {
	printStdioConfig("Claude Desktop", "claude_desktop_config.json", `{
  "mcpServers": {
    "checklistmcp": {
      "command": "checklistmcp"
    }
  }
}`)

	printHTTPConfig("Claude Desktop", "claude_desktop_config.json", `{
  "mcpServers": {
    "checklistmcp": {
      "type": "streamable-http",
      "url": "http://your-checklistmcp-server:8787/mcp"
    }
  }
}`)
}

func printCursorConfig() {
	printStdioConfig("Cursor", ".cursor/mcp.json", `{
  "mcpServers": {
    "checklistmcp": {
      "command": "checklistmcp"
    }
  }
}`)

	printHTTPConfig("Cursor", ".cursor/mcp.json", `{
  "mcpServers": {
    "checklistmcp": {
      "type": "streamable-http",
      "url": "http://your-checklistmcp-server:8787/mcp"
    }
  }
}`)
}

func printStdioConfig(client, file, config string) {
	fmt.Fprintf(os.Stdout, `%s — stdio mode
%s

Add to %s:

%s

checklistmcp runs as a subprocess — no server needed. Set
CHECKLISTMCP_MAX_SESSIONS / CHECKLISTMCP_MAX_NAMESPACES to change capacity.

`, client, strings.Repeat("─", len(client)+14), file, config)
}

func printHTTPConfig(client, file, config string) {
	fmt.Fprintf(os.Stdout, `%s — HTTP mode (remote server)
%s

Add to %s:

%s

Pass a "namespace" query parameter on the /mcp URL to address a
non-default namespace, e.g. "...?namespace=team-a".

`, client, strings.Repeat("─", len(client)+30), file, config)
}
