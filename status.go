// status.go defines the check_status tool: a single status read for a
// task returned earlier by text_to_image or edit_image. Clients that
// submitted with wait_for_result=false poll through this tool.
package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs is the input for the check_status tool.
type StatusArgs struct {
	TaskID string `json:"task_id" jsonschema:"Task ID returned by a generation call"`
	Type   string `json:"type,omitempty" jsonschema:"Engine the task belongs to: text-to-image or edit. Defaults to text-to-image."`
}

func statusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_status",
		Description: "Checks the status of a generation or edit task",
	}
}

func (ts *toolset) statusHandler() mcp.ToolHandlerFor[StatusArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if args.TaskID == "" {
			return validationError("task_id is required"), nil, nil
		}

		var kind TaskKind
		switch args.Type {
		case "", string(KindTextToImage):
			kind = KindTextToImage
		case string(KindEdit):
			kind = KindEdit
		default:
			return validationError("type must be text-to-image or edit"), nil, nil
		}

		task, err := ts.client.TaskStatus(ctx, kind, args.TaskID)
		if err != nil {
			return failureResult(err), nil, nil
		}
		return textResult(formatTask(task)), nil, nil
	}
}
