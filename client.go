package iris

import (
	"context"
	"encoding/json"
	"net/http"
)

// Client is the main entrypoint.
type Client struct {
	Config Config
	auth   Auth
	http   *httpClient

	Leads        *LeadsAPI
	Agents       *AgentsAPI
	Workflows    *WorkflowsAPI
	Bloqs        *BloqsAPI
	Integrations *IntegrationsAPI
	Courses      *CoursesAPI
	Automations  *AutomationsAPI
	Calls        *CallsAPI
}

// NewClient constructs a Client using parameters or environment fallbacks.
func NewClient(apiKey string, userID int64, baseURL string, timeoutSeconds float64, maxRetries int) (*Client, error) {
	cfg, err := LoadConfig(apiKey, userID, baseURL, timeoutSeconds, maxRetries)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithParams constructs a Client from structured configuration parameters.
func NewClientWithParams(params ConfigParams) (*Client, error) {
	cfg, err := LoadConfigWithParams(params)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig builds a Client from a fully parsed Config.
func NewClientWithConfig(cfg Config) (*Client, error) {
	auth := newAuth(cfg)
	http := newHTTPClient(cfg, auth)

	c := &Client{
		Config: cfg,
		auth:   auth,
		http:   http,
	}
	c.Leads = &LeadsAPI{client: c}
	c.Agents = &AgentsAPI{client: c}
	c.Workflows = &WorkflowsAPI{client: c}
	c.Bloqs = &BloqsAPI{client: c}
	c.Integrations = &IntegrationsAPI{client: c}
	c.Courses = &CoursesAPI{client: c}
	c.Automations = &AutomationsAPI{client: c}
	c.Calls = &CallsAPI{client: c}
	return c, nil
}

// Close releases HTTP resources.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.close()
}

// Request is the generic gateway surface: it routes the path to its
// backend host, attaches the resolved credential, executes with retry,
// and returns the unwrapped JSON payload as a dynamic value.
func (c *Client) Request(ctx context.Context, method, path string, opts *RequestOptions) (any, error) {
	raw, err := c.http.request(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Body: raw, Err: err}
	}
	return out, nil
}

// Get performs a GET through the gateway.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) (any, error) {
	return c.Request(ctx, http.MethodGet, path, &RequestOptions{Query: query})
}

// Post performs a POST with a JSON body through the gateway.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.Request(ctx, http.MethodPost, path, &RequestOptions{Body: body})
}

// Put performs a PUT with a JSON body through the gateway.
func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.Request(ctx, http.MethodPut, path, &RequestOptions{Body: body})
}

// Patch performs a PATCH with a JSON body through the gateway.
func (c *Client) Patch(ctx context.Context, path string, body any) (any, error) {
	return c.Request(ctx, http.MethodPatch, path, &RequestOptions{Body: body})
}

// Delete performs a DELETE through the gateway.
func (c *Client) Delete(ctx context.Context, path string, query map[string]string) (any, error) {
	return c.Request(ctx, http.MethodDelete, path, &RequestOptions{Query: query})
}

// Upload streams the file at filePath as a multipart part named "file",
// with fields attached as form values (non-scalars JSON-encoded). A
// nonexistent path fails before any network call.
func (c *Client) Upload(ctx context.Context, path, filePath string, fields map[string]any) (any, error) {
	raw, err := c.http.upload(ctx, path, FileUpload{Path: filePath}, fields, nil)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &MalformedResponseError{Body: raw, Err: err}
	}
	return out, nil
}
