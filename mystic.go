// mystic.go defines the legacy mystic_generate tool. The mystic engine
// predates seedream and stays registered for clients that still call
// it. It uses its own poll budget; see Config.
package main

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var mysticResolutions = []string{"2k", "4k"}

const defaultMysticResolution = "2k"

// MysticArgs is the input for the mystic_generate tool.
type MysticArgs struct {
	Prompt        string `json:"prompt" jsonschema:"Text description of the image to generate"`
	Resolution    string `json:"resolution,omitempty" jsonschema:"Output resolution: 2k or 4k. Defaults to 2k."`
	AspectRatio   string `json:"aspect_ratio,omitempty" jsonschema:"Aspect ratio, same values as text_to_image. Defaults to square_1_1."`
	Realism       *bool  `json:"realism,omitempty" jsonschema:"Bias the engine toward photorealistic output"`
	WaitForResult *bool  `json:"wait_for_result,omitempty" jsonschema:"Poll until the image is ready. Defaults to true."`
}

func mysticTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "mystic_generate",
		Description: "Generates an image using the legacy Mystic engine",
	}
}

func (ts *toolset) mysticHandler() mcp.ToolHandlerFor[MysticArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args MysticArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if strings.TrimSpace(args.Prompt) == "" {
			return validationError("prompt is required"), nil, nil
		}
		resolution := args.Resolution
		if resolution == "" {
			resolution = defaultMysticResolution
		}
		if !slices.Contains(mysticResolutions, resolution) {
			return validationError("resolution must be 2k or 4k"), nil, nil
		}
		ratio := args.AspectRatio
		if ratio == "" {
			ratio = defaultAspectRatio
		}
		if !slices.Contains(aspectRatios, ratio) {
			return validationError("aspect_ratio must be one of: " + strings.Join(aspectRatios, ", ")), nil, nil
		}

		task, err := ts.client.Mystic(ctx, MysticRequest{
			Prompt:      args.Prompt,
			Resolution:  resolution,
			AspectRatio: ratio,
			Realism:     args.Realism != nil && *args.Realism,
		})
		if err != nil {
			return failureResult(err), nil, nil
		}
		if !waitRequested(args.WaitForResult) {
			return textResult(formatSubmitted(task)), nil, nil
		}

		done, err := ts.await(ctx, KindMystic, task.ID, ts.cfg.MysticMaxAttempts)
		if err != nil {
			return failureResult(err), nil, nil
		}
		return textResult(formatTask(done)), nil, nil
	}
}
