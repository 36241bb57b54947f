// results.go builds the tool results returned to MCP clients. Success
// and failure share one shape: text content plus an explicit error
// flag, so a client can always tell them apart.
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult wraps human-readable text in a successful tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult tags a failure with its taxonomy kind.
func errorResult(kind string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s error: %v", kind, err)}},
	}
}

// validationError reports a rejected argument. No vendor call has been
// made when this is returned.
func validationError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "validation error: " + msg}},
	}
}

// failureResult classifies err into the error taxonomy and formats it.
func failureResult(err error) *mcp.CallToolResult {
	var (
		cfgErr     *ConfigError
		apiErr     *APIError
		failedErr  *GenerationFailedError
		timeoutErr *TimeoutError
	)
	switch {
	case errors.As(err, &cfgErr):
		return errorResult("config", cfgErr)
	case errors.As(err, &apiErr):
		return errorResult("vendor", apiErr)
	case errors.As(err, &failedErr):
		return errorResult("generation_failed", failedErr)
	case errors.As(err, &timeoutErr):
		return errorResult("timeout", timeoutErr)
	}
	return errorResult("internal", err)
}

// formatTask renders a task for display. Tasks with at least one asset
// show the first image URL; anything else falls back to a JSON dump.
func formatTask(task *Task) string {
	if len(task.Generated) > 0 && task.Generated[0].URL != "" {
		return fmt.Sprintf("Status: %s\n\nImage URL: %s", task.Status, task.Generated[0].URL)
	}
	raw, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Sprintf("Status: %s", task.Status)
	}
	return string(raw)
}

// formatSubmitted renders a task id returned without waiting.
func formatSubmitted(task *Task) string {
	return fmt.Sprintf("Task submitted.\n\nTask ID: %s\nStatus: %s\n\nUse check_status to poll for the result.",
		task.ID, task.Status)
}
