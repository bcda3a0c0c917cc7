// Package mcp implements the wire-level JSON-RPC 2.0 / Model Context
// Protocol surface checklistmcp speaks: the envelope types, the tool /
// prompt / resource registry, the stdio message loop, and (in http.go) the
// Streamable HTTP transport. None of it knows what a task or a work-info
// snapshot is — that lives in internal/tools/checklist, which plugs into
// the registry through the Tool interface.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// protocolVersion is the MCP handshake version this server speaks.
const protocolVersion = "2024-11-05"

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// Request is a single JSON-RPC 2.0 call or notification. A nil ID marks a
// notification: the server processes it but sends no Response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is the JSON-RPC 2.0 reply to a Request that carried an ID.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a protocol-level failure: malformed requests, unknown
// methods, unknown tools/prompts/resources. A tool that runs but rejects
// its input reports that in-band via ToolsCallResult.IsError instead — see
// ErrorResult.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// rpcErrorf builds an RPCError with a formatted message, used for the
// "not found" family of dispatch failures.
func rpcErrorf(code int, format string, args ...any) *RPCError {
	return &RPCError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// rpcErrorFromParse wraps a params-unmarshal failure, attaching the
// underlying error as structured Data rather than folding it into Message.
func rpcErrorFromParse(stage string, err error) *RPCError {
	return &RPCError{
		Code:    ErrCodeInvalidParams,
		Message: fmt.Sprintf("invalid %s params", stage),
		Data:    err.Error(),
	}
}

// Server dispatches JSON-RPC requests against a Registry of tools,
// prompts, and resources, and drives the stdio transport's read/respond
// loop. http.go drives the same dispatch logic over Streamable HTTP.
type Server struct {
	registry *Registry
	info     ServerInfo
	logger   *slog.Logger
}

// ServerInfo identifies this server in the initialize handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewServer creates an MCP server with the given registry and server info.
func NewServer(registry *Registry, info ServerInfo, logger *slog.Logger) *Server {
	return &Server{registry: registry, info: info, logger: logger}
}

// Run reads JSON-RPC requests from stdin, one per line, and writes
// responses to stdout. It blocks until stdin is closed or ctx is
// cancelled. Used when CHECKLISTMCP_TRANSPORT is unset or "stdio".
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	// A session carrying a large task tree can serialize past the default
	// 64KB scanner buffer, so start larger and allow up to 10MB per line.
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	s.logger.Info("checklistmcp server started", "name", s.info.Name, "version", s.info.Version)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.HandleMessage(ctx, line)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to write response", "error", err)
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("reading stdin: %w", err)
	}

	s.logger.Info("checklistmcp server stopped (stdin closed)")
	return nil
}

// HandleMessage parses one JSON-RPC message and dispatches it, returning
// the Response to send back, or nil when data encoded a notification. Both
// the stdio loop and the HTTP transport funnel through this one entrypoint
// so the two transports can never drift in how they interpret a request.
func (s *Server) HandleMessage(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Error("failed to parse request", "error", err)
		return &Response{JSONRPC: "2.0", Error: &RPCError{
			Code:    ErrCodeParse,
			Message: "Parse error",
			Data:    err.Error(),
		}}
	}

	if req.ID == nil {
		if req.Method == "notifications/initialized" {
			s.logger.Info("client initialized")
		} else {
			s.logger.Debug("received notification", "method", req.Method)
		}
		return nil
	}

	start := time.Now()
	result, rpcErr := s.dispatch(ctx, &req)
	s.logger.Debug("handled request", "method", req.Method, "id", string(req.ID), "elapsed", time.Since(start))

	resp := &Response{JSONRPC: "2.0", ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// dispatch routes a request to its handler by method name.
func (s *Server) dispatch(ctx context.Context, req *Request) (any, *RPCError) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.Params)
	case "tools/list":
		return s.handleToolsList()
	case "tools/call":
		return s.handleToolsCall(ctx, req.Params)
	case "prompts/list":
		return s.handlePromptsList()
	case "prompts/get":
		return s.handlePromptsGet(req.Params)
	case "resources/list":
		return s.handleResourcesList()
	case "resources/read":
		return s.handleResourcesRead(req.Params)
	default:
		return nil, rpcErrorf(ErrCodeMethodNotFound, "method not found: %s", req.Method)
	}
}

// InitializeParams is sent by the client during the handshake.
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	Capabilities    any        `json:"capabilities"`
	ClientInfo      ClientInfo `json:"clientInfo"`
}

// ClientInfo identifies the connecting MCP client (e.g. an editor's agent
// integration), reported for logging only.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult answers the handshake with this server's capabilities.
// Prompts and Resources are only advertised when at least one is
// registered, so a build wired with just the six checklist tools (no
// start-checklist prompt, no reference resources) still handshakes cleanly.
type InitializeResult struct {
	ProtocolVersion string           `json:"protocolVersion"`
	Capabilities    ServerCapability `json:"capabilities"`
	ServerInfo      ServerInfo       `json:"serverInfo"`
}

type ServerCapability struct {
	Tools     *ToolsCapability     `json:"tools,omitempty"`
	Prompts   *PromptsCapability   `json:"prompts,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type PromptsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe,omitempty"`
	ListChanged bool `json:"listChanged,omitempty"`
}

// handleInitialize responds to the MCP handshake.
func (s *Server) handleInitialize(params json.RawMessage) (any, *RPCError) {
	var initParams InitializeParams
	if params != nil {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, rpcErrorFromParse("initialize", err)
		}
	}

	s.logger.Info("client connecting",
		"client", initParams.ClientInfo.Name,
		"client_version", initParams.ClientInfo.Version,
		"protocol_version", initParams.ProtocolVersion,
	)

	caps := ServerCapability{Tools: &ToolsCapability{}}
	if s.registry.HasPrompts() {
		caps.Prompts = &PromptsCapability{}
	}
	if s.registry.HasResources() {
		caps.Resources = &ResourcesCapability{}
	}

	return &InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    caps,
		ServerInfo:      s.info,
	}, nil
}

// ToolsListResult answers tools/list: the six checklist tools this server
// registers (update_tasks, mark_task_as_done, get_all_tasks,
// save_current_work_info, get_recent_works_info, get_work_by_id), in the
// order cmd/checklistmcp registered them.
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func (s *Server) handleToolsList() (any, *RPCError) {
	return &ToolsListResult{Tools: s.registry.List()}, nil
}

// ToolsCallParams names the tool to invoke and its arguments.
type ToolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolsCallResult is a tool's reply. A validation failure against
// well-formed JSON-RPC (a bad sessionId, an unknown taskId, a duplicate
// taskId, ...) is reported here via IsError, never as an RPCError — only a
// call naming a tool the registry has never heard of reaches the
// RPCError/ErrCodeMethodNotFound path below.
type ToolsCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is one piece of a tool, prompt, or resource-read reply.
// Every checklist tool emits "text" blocks only: a confirmation line plus,
// for the tree-mutating tools, a rendered ASCII tree.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextContent wraps a string as a text content block.
func TextContent(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ErrorResult builds a single-block, IsError-true ToolsCallResult. Tool
// handlers use this for every rejected-input and lookup-failure path; see
// internal/tools/checklist's errResult/errInvalidParams for the
// "Error: <reason>" formatting convention layered on top of it.
func ErrorResult(msg string) *ToolsCallResult {
	return &ToolsCallResult{Content: []ContentBlock{TextContent(msg)}, IsError: true}
}

// JSONResult marshals v as indented JSON and wraps it in a single text
// content block. get_work_by_id uses this for its structured (non-tree)
// reply.
func JSONResult(v any) (*ToolsCallResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &ToolsCallResult{Content: []ContentBlock{TextContent(string(b))}}, nil
}

// handleToolsCall dispatches a tools/call request to the named tool.
func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, *RPCError) {
	var callParams ToolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, rpcErrorFromParse("tools/call", err)
	}

	tool := s.registry.Get(callParams.Name)
	if tool == nil {
		return nil, rpcErrorf(ErrCodeMethodNotFound, "tool not found: %s", callParams.Name)
	}

	start := time.Now()
	result, err := tool.Execute(ctx, callParams.Arguments)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("tool execution failed", "tool", callParams.Name, "error", err, "elapsed", elapsed)
		return ErrorResult(fmt.Sprintf("tool execution failed: %v", err)), nil
	}
	s.logger.Info("called tool", "tool", callParams.Name, "elapsed", elapsed)

	return result, nil
}

// PromptsListResult answers prompts/list.
type PromptsListResult struct {
	Prompts []PromptDefinition `json:"prompts"`
}

// PromptDefinition describes one prompt (checklistmcp registers exactly
// one, start-checklist — see internal/content/prompts.go).
type PromptDefinition struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

func (s *Server) handlePromptsList() (any, *RPCError) {
	return &PromptsListResult{Prompts: s.registry.ListPrompts()}, nil
}

// PromptsGetParams names the prompt to expand and its arguments.
type PromptsGetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// PromptsGetResult is the expanded prompt conversation.
type PromptsGetResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

type PromptMessage struct {
	Role    string       `json:"role"`
	Content ContentBlock `json:"content"`
}

func (s *Server) handlePromptsGet(params json.RawMessage) (any, *RPCError) {
	var getParams PromptsGetParams
	if err := json.Unmarshal(params, &getParams); err != nil {
		return nil, rpcErrorFromParse("prompts/get", err)
	}

	prompt := s.registry.GetPrompt(getParams.Name)
	if prompt == nil {
		return nil, rpcErrorf(ErrCodeMethodNotFound, "prompt not found: %s", getParams.Name)
	}

	s.logger.Debug("getting prompt", "prompt", getParams.Name)

	result, err := prompt.Get(getParams.Arguments)
	if err != nil {
		return nil, rpcErrorf(ErrCodeInternal, "prompt error: %v", err)
	}
	return result, nil
}

// ResourcesListResult answers resources/list (checklistmcp registers two:
// the data-model and tool-reference resources in internal/content).
type ResourcesListResult struct {
	Resources []ResourceDefinition `json:"resources"`
}

type ResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

func (s *Server) handleResourcesList() (any, *RPCError) {
	return &ResourcesListResult{Resources: s.registry.ListResources()}, nil
}

// ResourcesReadParams names the resource URI to read.
type ResourcesReadParams struct {
	URI string `json:"uri"`
}

// ResourcesReadResult is the resource's content.
type ResourcesReadResult struct {
	Contents []ResourceContent `json:"contents"`
}

type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (s *Server) handleResourcesRead(params json.RawMessage) (any, *RPCError) {
	var readParams ResourcesReadParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, rpcErrorFromParse("resources/read", err)
	}

	resource := s.registry.GetResource(readParams.URI)
	if resource == nil {
		return nil, rpcErrorf(ErrCodeMethodNotFound, "resource not found: %s", readParams.URI)
	}

	s.logger.Debug("reading resource", "uri", readParams.URI)

	result, err := resource.Read()
	if err != nil {
		return nil, rpcErrorf(ErrCodeInternal, "resource read error: %v", err)
	}
	return result, nil
}
