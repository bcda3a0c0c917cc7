package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name string
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "a stub tool" }
func (s *stubTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}
func (s *stubTool) Execute(ctx context.Context, params json.RawMessage) (*ToolsCallResult, error) {
	return &ToolsCallResult{Content: []ContentBlock{TextContent("ok")}}, nil
}

func testServer() *Server {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "a"})
	registry.Register(&stubTool{name: "b"})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(registry, ServerInfo{Name: "checklistmcp", Version: "test"}, logger)
}

// TestScenarioS8 mirrors the handshake + listing scenario.
func TestScenarioS8_InitializeAndToolsList(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test"}}}`))

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	initResult, ok := resp.Result.(*InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "2024-11-05", initResult.ProtocolVersion)
	require.NotNil(t, initResult.Capabilities.Tools)

	resp = s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	listResult, ok := resp.Result.(*ToolsListResult)
	require.True(t, ok)
	require.Len(t, listResult.Tools, 2)
	assert.Equal(t, "a", listResult.Tools[0].Name, "registration order preserved")
	assert.Equal(t, "b", listResult.Tools[1].Name)
	for _, def := range listResult.Tools {
		var schema map[string]any
		assert.NoError(t, json.Unmarshal(def.InputSchema, &schema), "inputSchema must be valid JSON")
	}
}

// TestScenarioS9 mirrors the unknown-tool scenario: a missing tool is a
// protocol-level JSON-RPC error, not an in-band text error.
func TestScenarioS9_UnknownToolIsRPCError(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"does_not_exist","arguments":{}}}`))

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, resp.Error.Code)
}

func TestHandleMessage_NotificationGetsNoResponse(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))

	assert.Nil(t, resp)
}

func TestHandleMessage_ParseError(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`not json`))

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
}

func TestHandleMessage_UnknownMethod(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"bogus/method"}`))

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, resp.Error.Code)
}

func TestHandleMessage_ToolsCallSuccess(t *testing.T) {
	s := testServer()

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"a","arguments":{}}}`))

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(*ToolsCallResult)
	require.True(t, ok)
	assert.Equal(t, "ok", result.Content[0].Text)
}
