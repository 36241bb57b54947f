// generate.go defines the text_to_image tool: seedream generation with
// an optional wait for the finished image.
package main

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// aspectRatios enumerates the aspect ratio values the engines accept.
var aspectRatios = []string{
	"square_1_1",
	"widescreen_16_9",
	"social_story_9_16",
	"portrait_2_3",
	"traditional_3_4",
	"standard_3_2",
	"classic_4_3",
}

const (
	defaultAspectRatio   = "square_1_1"
	defaultGuidanceScale = 2.5
)

// GenerateArgs is the input for the text_to_image tool.
type GenerateArgs struct {
	Prompt        string   `json:"prompt" jsonschema:"Text description of the image to generate"`
	AspectRatio   string   `json:"aspect_ratio,omitempty" jsonschema:"Aspect ratio: square_1_1, widescreen_16_9, social_story_9_16, portrait_2_3, traditional_3_4, standard_3_2 or classic_4_3. Defaults to square_1_1."`
	GuidanceScale *float64 `json:"guidance_scale,omitempty" jsonschema:"Prompt adherence, 1 to 10. Defaults to 2.5."`
	WaitForResult *bool    `json:"wait_for_result,omitempty" jsonschema:"Poll until the image is ready. Defaults to true."`
}

func generateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "text_to_image",
		Description: "Generates an image from a text prompt using the Seedream engine",
	}
}

func (ts *toolset) generateHandler() mcp.ToolHandlerFor[GenerateArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args GenerateArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if strings.TrimSpace(args.Prompt) == "" {
			return validationError("prompt is required"), nil, nil
		}
		ratio := args.AspectRatio
		if ratio == "" {
			ratio = defaultAspectRatio
		}
		if !slices.Contains(aspectRatios, ratio) {
			return validationError("aspect_ratio must be one of: " + strings.Join(aspectRatios, ", ")), nil, nil
		}
		scale := defaultGuidanceScale
		if args.GuidanceScale != nil {
			scale = *args.GuidanceScale
		}
		if scale < 1 || scale > 10 {
			return validationError("guidance_scale must be between 1 and 10"), nil, nil
		}

		task, err := ts.client.Generate(ctx, GenerateRequest{
			Prompt:        args.Prompt,
			AspectRatio:   ratio,
			GuidanceScale: scale,
		})
		if err != nil {
			return failureResult(err), nil, nil
		}
		if !waitRequested(args.WaitForResult) {
			return textResult(formatSubmitted(task)), nil, nil
		}

		done, err := ts.await(ctx, KindTextToImage, task.ID, ts.cfg.PollMaxAttempts)
		if err != nil {
			return failureResult(err), nil, nil
		}
		return textResult(formatTask(done)), nil, nil
	}
}
