// edit.go defines the edit_image tool: prompt-driven edits of an
// existing image via the seedream v4 edit engine.
package main

import (
	"context"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EditArgs is the input for the edit_image tool.
type EditArgs struct {
	Prompt        string   `json:"prompt" jsonschema:"Instructions describing the edit to apply"`
	ImageURL      string   `json:"image_url" jsonschema:"URL of the image to edit"`
	GuidanceScale *float64 `json:"guidance_scale,omitempty" jsonschema:"Prompt adherence, 1 to 10. Defaults to 2.5."`
	WaitForResult *bool    `json:"wait_for_result,omitempty" jsonschema:"Poll until the edit is ready. Defaults to true."`
}

func editTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "edit_image",
		Description: "Edits an existing image according to a text prompt",
	}
}

func (ts *toolset) editHandler() mcp.ToolHandlerFor[EditArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args EditArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if strings.TrimSpace(args.Prompt) == "" {
			return validationError("prompt is required"), nil, nil
		}
		if args.ImageURL == "" {
			return validationError("image_url is required"), nil, nil
		}
		if u, err := url.Parse(args.ImageURL); err != nil || u.Host == "" ||
			(u.Scheme != "http" && u.Scheme != "https") {
			return validationError("image_url must be an http(s) URL"), nil, nil
		}
		scale := defaultGuidanceScale
		if args.GuidanceScale != nil {
			scale = *args.GuidanceScale
		}
		if scale < 1 || scale > 10 {
			return validationError("guidance_scale must be between 1 and 10"), nil, nil
		}

		task, err := ts.client.Edit(ctx, EditRequest{
			Prompt:          args.Prompt,
			ReferenceImages: []string{args.ImageURL},
			GuidanceScale:   scale,
		})
		if err != nil {
			return failureResult(err), nil, nil
		}
		if !waitRequested(args.WaitForResult) {
			return textResult(formatSubmitted(task)), nil, nil
		}

		done, err := ts.await(ctx, KindEdit, task.ID, ts.cfg.PollMaxAttempts)
		if err != nil {
			return failureResult(err), nil, nil
		}
		return textResult(formatTask(done)), nil, nil
	}
}
