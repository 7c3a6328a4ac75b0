// Package flowapi implements the HTTP client for the external flow
// persistence and execution service. It is the only package that knows the
// service's REST shape; everything above it talks to the
// usecases.FlowService interface.
package flowapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nexusflow/floweditor/internal/app/dto"
	"github.com/nexusflow/floweditor/internal/core/flow"
	"github.com/nexusflow/floweditor/pkg/validation"
)

// Client talks JSON to the flow service
// PRINCIPLES:
// - SRP: Transport only; no editor state, no retries
// - KISS: One helper per HTTP verb pattern
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey attaches a bearer token to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout bounds each request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a flow service client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError reports a non-2xx response from the flow service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("flow service returned %d: %s", e.StatusCode, e.Body)
}

// ListFlows returns summaries of persisted flows.
func (c *Client) ListFlows(ctx context.Context) ([]dto.FlowSummary, error) {
	var out []dto.FlowSummary
	if err := c.do(ctx, http.MethodGet, "/flows", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFlow fetches a persisted flow, with or without visual layout.
func (c *Client) GetFlow(ctx context.Context, flowID string) (*dto.FlowPayload, error) {
	if flowID == "" {
		return nil, dto.ErrMissingFlowID
	}
	var out dto.FlowPayload
	if err := c.do(ctx, http.MethodGet, "/flows/"+url.PathEscape(flowID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFlow persists a new flow configuration.
func (c *Client) CreateFlow(ctx context.Context, cfg *flow.Config) (*dto.SaveFlowResponse, error) {
	if cfg == nil {
		return nil, dto.ErrNilFlowConfig
	}
	var out dto.SaveFlowResponse
	if err := c.do(ctx, http.MethodPost, "/flows", &dto.SaveFlowRequest{FlowConfig: cfg}, &out); err != nil {
		return nil, err
	}
	if out.Ref() == "" {
		return nil, dto.ErrEmptyResponse
	}
	return &out, nil
}

// UpdateFlow replaces a persisted flow configuration.
func (c *Client) UpdateFlow(ctx context.Context, flowID string, cfg *flow.Config) (*dto.SaveFlowResponse, error) {
	if flowID == "" {
		return nil, dto.ErrMissingFlowID
	}
	if cfg == nil {
		return nil, dto.ErrNilFlowConfig
	}
	var out dto.SaveFlowResponse
	if err := c.do(ctx, http.MethodPut, "/flows/"+url.PathEscape(flowID), &dto.SaveFlowRequest{FlowConfig: cfg}, &out); err != nil {
		return nil, err
	}
	if out.Ref() == "" {
		// Some service versions answer updates with a bare status; keep the
		// caller's id in that case.
		out.FlowID = flowID
	}
	return &out, nil
}

// DeleteFlow removes a persisted flow. The response carries status only.
func (c *Client) DeleteFlow(ctx context.Context, flowID string) error {
	if flowID == "" {
		return dto.ErrMissingFlowID
	}
	return c.do(ctx, http.MethodDelete, "/flows/"+url.PathEscape(flowID), nil, nil)
}

// ExecuteConfig runs an unsaved configuration against a single input.
func (c *Client) ExecuteConfig(ctx context.Context, cfg *flow.Config, input string) (*dto.ExecuteResponse, error) {
	if cfg == nil {
		return nil, dto.ErrNilFlowConfig
	}
	var out dto.ExecuteResponse
	req := &dto.ExecuteConfigRequest{FlowConfig: cfg, Input: input}
	if err := c.do(ctx, http.MethodPost, "/execute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteFlow runs a saved flow by id.
func (c *Client) ExecuteFlow(ctx context.Context, flowID string, req *dto.ExecuteFlowRequest) (*dto.ExecuteResponse, error) {
	if flowID == "" {
		return nil, dto.ErrMissingFlowID
	}
	if req == nil {
		return nil, dto.ErrMissingInput
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	var out dto.ExecuteResponse
	if err := c.do(ctx, http.MethodPost, "/flows/"+url.PathEscape(flowID)+"/execute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCapabilities returns the capability catalog.
func (c *Client) ListCapabilities(ctx context.Context) ([]dto.Capability, error) {
	var out []dto.Capability
	if err := c.do(ctx, http.MethodGet, "/capabilities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeployFlow promotes a persisted flow to a deployed version.
func (c *Client) DeployFlow(ctx context.Context, req *dto.DeployFlowRequest) (*dto.Deployment, error) {
	if req == nil || req.FlowID == "" {
		return nil, dto.ErrMissingFlowID
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	var out dto.Deployment
	path := "/flows/" + url.PathEscape(req.FlowID) + "/deploy"
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one JSON request and decodes the JSON response into out, when
// out is non-nil. Every request gets its own timeout-bounded context.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("flow service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", dto.ErrMalformedPayload, err)
	}
	return nil
}
