// tools.go wires the full toolset into an MCP server and holds the
// helpers shared across tool handlers.
package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "freepik-seedream-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.2.0"
)

// newMCPServer builds an MCP server with every tool registered.
func newMCPServer(ts *toolset) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, generateTool(), ts.generateHandler())
	mcp.AddTool(server, editTool(), ts.editHandler())
	mcp.AddTool(server, statusTool(), ts.statusHandler())
	mcp.AddTool(server, mysticTool(), ts.mysticHandler())
	mcp.AddTool(server, searchTool(), ts.searchHandler())
	mcp.AddTool(server, getResourceTool(), ts.getResourceHandler())
	mcp.AddTool(server, downloadResourceTool(), ts.downloadResourceHandler())
	return server
}

// toolset binds tool handlers to one vendor client and one
// configuration. Handlers hold no other state; everything task-related
// lives on the vendor side.
type toolset struct {
	client    *Client
	cfg       Config
	configErr error
}

// newToolset validates the configuration once. With no API key, every
// tool call reports a config error instead of sending unauthenticated
// requests.
func newToolset(cfg Config, apiKey string) *toolset {
	ts := &toolset{cfg: cfg}
	if apiKey == "" {
		ts.configErr = &ConfigError{Reason: "FREEPIK_API_KEY is not set and no session config was provided"}
		return ts
	}
	ts.client = NewClient(cfg.BaseURL, apiKey)
	return ts
}

// await polls the status endpoint for the given task until it reaches a
// terminal state or maxAttempts checks have been made.
func (ts *toolset) await(ctx context.Context, kind TaskKind, taskID string, maxAttempts int) (*Task, error) {
	return waitForTask(ctx, taskID, func(ctx context.Context) (*Task, error) {
		return ts.client.TaskStatus(ctx, kind, taskID)
	}, ts.cfg.PollInterval, maxAttempts)
}

// waitRequested resolves the wait_for_result default of true. A plain
// bool would read false when omitted; the pointer keeps the tri-state.
func waitRequested(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
