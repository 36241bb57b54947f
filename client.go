// client.go implements the Freepik API client: authenticated HTTP
// requests to the generation and stock endpoints, and normalization of
// the vendor's response envelopes at the parse boundary.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const apiKeyHeader = "x-freepik-api-key"

// TaskKind selects which generation engine a task id belongs to. Status
// polling is path-parameterized by engine, so the kind travels with the
// id everywhere a status check happens.
type TaskKind string

const (
	KindTextToImage TaskKind = "text-to-image"
	KindEdit        TaskKind = "edit"
	KindMystic      TaskKind = "mystic"
)

// statusPath returns the status endpoint for a task of this kind.
func (k TaskKind) statusPath(taskID string) (string, error) {
	switch k {
	case KindTextToImage:
		return "/v1/ai/text-to-image/seedream/" + url.PathEscape(taskID), nil
	case KindEdit:
		return "/v1/ai/text-to-image/seedream-v4-edit/" + url.PathEscape(taskID), nil
	case KindMystic:
		return "/v1/ai/mystic/" + url.PathEscape(taskID), nil
	}
	return "", fmt.Errorf("unknown task kind %q", string(k))
}

// Task statuses reported by the vendor. COMPLETED and FAILED are
// terminal; a task never leaves either.
const (
	StatusCreated    = "CREATED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// GeneratedAsset is one produced image. The vendor returns either a
// bare URL string or an object with url and content_type; both decode
// here so call sites never see the union.
type GeneratedAsset struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
}

func (a *GeneratedAsset) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = GeneratedAsset{URL: s}
		return nil
	}
	type plain GeneratedAsset
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = GeneratedAsset(p)
	return nil
}

// Task is a vendor-side generation job. This server never mutates one;
// it only reads status until the vendor reports a terminal state.
type Task struct {
	ID        string           `json:"task_id"`
	Status    string           `json:"status"`
	Generated []GeneratedAsset `json:"generated,omitempty"`
}

// GenerateRequest is the seedream text-to-image request body.
type GenerateRequest struct {
	Prompt        string  `json:"prompt"`
	AspectRatio   string  `json:"aspect_ratio,omitempty"`
	GuidanceScale float64 `json:"guidance_scale,omitempty"`
}

// EditRequest is the seedream v4 edit request body. ReferenceImages
// carries the source image URL.
type EditRequest struct {
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"reference_images"`
	GuidanceScale   float64  `json:"guidance_scale,omitempty"`
}

// MysticRequest is the legacy engine request body.
type MysticRequest struct {
	Prompt      string `json:"prompt"`
	Resolution  string `json:"resolution,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Realism     bool   `json:"realism,omitempty"`
}

// SearchParams filter a stock search.
type SearchParams struct {
	Term        string
	Limit       int
	Order       string
	ContentType string
}

// SearchResult is the truncated projection of a stock resource that is
// forwarded for display.
type SearchResult struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Author  string `json:"author"`
}

// SearchPage is one page of stock results plus the vendor's total
// match count.
type SearchPage struct {
	Results []SearchResult
	Total   int
}

// Client issues authenticated requests to the Freepik API. No retries
// at this layer: a failed request fails the call. Only the poller asks
// again, and only for tasks that are not yet ready.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate submits a seedream text-to-image job.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Task, error) {
	return c.postTask(ctx, "/v1/ai/text-to-image/seedream", req)
}

// Edit submits a seedream v4 edit job.
func (c *Client) Edit(ctx context.Context, req EditRequest) (*Task, error) {
	return c.postTask(ctx, "/v1/ai/text-to-image/seedream-v4-edit", req)
}

// Mystic submits a job to the legacy mystic engine.
func (c *Client) Mystic(ctx context.Context, req MysticRequest) (*Task, error) {
	return c.postTask(ctx, "/v1/ai/mystic", req)
}

// TaskStatus reads the current state of a task. One read per call; the
// poller owns the repetition.
func (c *Client) TaskStatus(ctx context.Context, kind TaskKind, taskID string) (*Task, error) {
	path, err := kind.statusPath(taskID)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseTask(body)
}

// Search queries the stock library.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchPage, error) {
	q := url.Values{}
	q.Set("term", p.Term)
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if p.ContentType != "" {
		q.Set("filters[content_type]", p.ContentType)
	}
	body, err := c.do(ctx, http.MethodGet, "/v1/resources?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Data []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
			Image struct {
				Source struct {
					URL string `json:"url"`
				} `json:"source"`
			} `json:"image"`
			Author struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	page := &SearchPage{Total: raw.Meta.Total}
	for _, r := range raw.Data {
		page.Results = append(page.Results, SearchResult{
			ID:      r.ID,
			Title:   r.Title,
			Preview: r.Image.Source.URL,
			Author:  r.Author.Name,
		})
	}
	return page, nil
}

// Resource fetches the full detail record for a stock resource. The
// caller renders it verbatim, so the raw JSON is returned.
func (c *Client) Resource(ctx context.Context, id int) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/resources/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// DownloadURL resolves the signed download URL for a stock resource.
func (c *Client) DownloadURL(ctx context.Context, id int) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/resources/"+strconv.Itoa(id)+"/download", nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse download response: %w", err)
	}
	if resp.Data.URL != "" {
		return resp.Data.URL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", fmt.Errorf("download response missing url")
}

// postTask submits a generation request and parses the returned task.
func (c *Client) postTask(ctx context.Context, path string, payload any) (*Task, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return parseTask(body)
}

// do performs one authenticated round trip. A non-2xx status becomes an
// *APIError carrying the vendor's status code and body text.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &ConfigError{Reason: "FREEPIK_API_KEY is not set"}
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freepik request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read freepik response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// parseTask normalizes the vendor's two task envelopes. Generation
// endpoints usually wrap the task under a data field; some responses
// are flat. The union is resolved here once so call sites never see it.
func parseTask(body []byte) (*Task, error) {
	var enveloped struct {
		Data *Task `json:"data"`
	}
	if err := json.Unmarshal(body, &enveloped); err == nil && enveloped.Data != nil &&
		(enveloped.Data.ID != "" || enveloped.Data.Status != "") {
		return enveloped.Data, nil
	}

	var flat Task
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("parse task response: %w", err)
	}
	if flat.ID == "" && flat.Status == "" {
		return nil, fmt.Errorf("task response has no task_id or status")
	}
	return &flat, nil
}
