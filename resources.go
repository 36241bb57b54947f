// resources.go defines the stock-content tools: search, detail lookup,
// and download URL resolution for Freepik resources.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 200
	// maxSummarized caps how many entries are rendered inline. The
	// total count always reflects the full match set.
	maxSummarized = 10
)

var (
	searchOrders       = []string{"relevance", "recent"}
	searchContentTypes = []string{"photo", "vector", "psd"}
)

// SearchArgs is the input for the search_resources tool.
type SearchArgs struct {
	Term        string `json:"term" jsonschema:"Search term"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Results per page, 1 to 200. Defaults to 20."`
	Order       string `json:"order,omitempty" jsonschema:"Sort order: relevance or recent"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Filter by type: photo, vector or psd"`
}

func searchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_resources",
		Description: "Searches the Freepik stock library",
	}
}

func (ts *toolset) searchHandler() mcp.ToolHandlerFor[SearchArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if strings.TrimSpace(args.Term) == "" {
			return validationError("term is required"), nil, nil
		}
		limit := args.Limit
		if limit == 0 {
			limit = defaultSearchLimit
		}
		if limit < 1 || limit > maxSearchLimit {
			return validationError("limit must be between 1 and 200"), nil, nil
		}
		if args.Order != "" && !slices.Contains(searchOrders, args.Order) {
			return validationError("order must be relevance or recent"), nil, nil
		}
		if args.ContentType != "" && !slices.Contains(searchContentTypes, args.ContentType) {
			return validationError("content_type must be photo, vector or psd"), nil, nil
		}

		page, err := ts.client.Search(ctx, SearchParams{
			Term:        args.Term,
			Limit:       limit,
			Order:       args.Order,
			ContentType: args.ContentType,
		})
		if err != nil {
			return failureResult(err), nil, nil
		}

		shown := page.Results
		if len(shown) > maxSummarized {
			shown = shown[:maxSummarized]
		}
		if shown == nil {
			shown = []SearchResult{}
		}
		raw, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			return failureResult(err), nil, nil
		}
		text := fmt.Sprintf("Found %d results for %q\n\n%s", page.Total, args.Term, raw)
		return textResult(text), nil, nil
	}
}

// GetResourceArgs is the input for the get_resource tool.
type GetResourceArgs struct {
	ID int `json:"id" jsonschema:"Numeric identifier of the stock resource"`
}

func getResourceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_resource",
		Description: "Fetches the full detail record for a stock resource",
	}
}

func (ts *toolset) getResourceHandler() mcp.ToolHandlerFor[GetResourceArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args GetResourceArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if args.ID <= 0 {
			return validationError("id must be a positive integer"), nil, nil
		}

		raw, err := ts.client.Resource(ctx, args.ID)
		if err != nil {
			return failureResult(err), nil, nil
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			return textResult(string(raw)), nil, nil
		}
		return textResult(pretty.String()), nil, nil
	}
}

// DownloadResourceArgs is the input for the download_resource tool.
type DownloadResourceArgs struct {
	ID int `json:"id" jsonschema:"Numeric identifier of the stock resource"`
}

func downloadResourceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "download_resource",
		Description: "Resolves the download URL for a stock resource",
	}
}

func (ts *toolset) downloadResourceHandler() mcp.ToolHandlerFor[DownloadResourceArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args DownloadResourceArgs) (*mcp.CallToolResult, any, error) {
		if ts.configErr != nil {
			return failureResult(ts.configErr), nil, nil
		}
		if args.ID <= 0 {
			return validationError("id must be a positive integer"), nil, nil
		}

		downloadURL, err := ts.client.DownloadURL(ctx, args.ID)
		if err != nil {
			return failureResult(err), nil, nil
		}
		return textResult(downloadURL), nil, nil
	}
}
