// Package registry implements the shared client all five backend registries
// are built on: bearer-token auth, base URL resolution, JSON envelope
// decoding and the per-call log record. It performs no retries and never
// follows pagination cursors; both are caller decisions.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mamacare/internal/platform/metrics"
)

// Page is the pagination envelope every registry list endpoint returns.
// Next and Previous carry cursor URLs; the client does not auto-follow them.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Client talks to one backend registry. All five concrete registries wrap
// exactly one Client each.
type Client struct {
	name      string
	baseURL   string
	token     string
	transport Transport
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewClient builds a registry client. name labels log records and metrics.
// metrics may be nil.
func NewClient(name, baseURL, token string, transport Transport, logger *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		name:      name,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		transport: transport,
		logger:    logger,
		metrics:   m,
	}
}

// Get fetches a single resource. A 404 response yields an error matching
// ErrNotFound via errors.Is.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Create posts a new resource and decodes the created entity into out.
func (c *Client) Create(ctx context.Context, path string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Update patches an existing resource and decodes the response into out.
func (c *Client) Update(ctx context.Context, path string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPatch, path, nil, payload)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// List fetches one page of resources. An empty Results slice with Count zero
// is a normal outcome, not an error.
func List[T any](ctx context.Context, c *Client, path string, params url.Values) (*Page[T], error) {
	body, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	var page Page[T]
	if err := decode(body, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, target, err)
		}
	}

	header := http.Header{}
	header.Set("Authorization", "Token "+c.token)
	header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.transport.Send(ctx, Request{
		Method: method,
		URL:    target,
		Params: params,
		Header: header,
		Body:   reqBody,
	})
	if err != nil {
		if c.metrics != nil {
			c.metrics.ObserveRegistryRequest(c.name, method, 0, time.Since(start))
		}
		return nil, err
	}

	// Audit side effect only: the call record never alters control flow.
	c.logCall(ctx, method, target, reqBody, params, resp)
	if c.metrics != nil {
		c.metrics.ObserveRegistryRequest(c.name, method, resp.Code, time.Since(start))
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return nil, &RegistryError{Code: resp.Code, Method: method, URL: target, Body: string(resp.Body)}
	}
	return resp.Body, nil
}

func decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode registry response: %w", err)
	}
	return nil
}

type callRequest struct {
	URL    string `json:"url"`
	Method string `json:"method"`
	Body   string `json:"body,omitempty"`
}

type callRecord struct {
	Code    int         `json:"code"`
	Request callRequest `json:"request"`
	Body    string      `json:"body"`
}

// logCall emits the four-line service call record. Downstream log-based tests
// depend on the literal format, so the shape here is a contract:
//
//	Request: <METHOD> <url>
//	Payload: <json|null>
//	Params: <json|null>
//	Response: <json envelope echoing the request plus the raw body>
func (c *Client) logCall(ctx context.Context, method, target string, reqBody []byte, params url.Values, resp *Response) {
	payload := "null"
	if reqBody != nil {
		payload = string(reqBody)
	}

	paramsJSON := "null"
	if len(params) > 0 {
		flat := make(map[string]string, len(params))
		for k := range params {
			flat[k] = params.Get(k)
		}
		if b, err := json.Marshal(flat); err == nil {
			paramsJSON = string(b)
		}
	}

	record := callRecord{
		Code: resp.Code,
		Request: callRequest{
			URL:    target,
			Method: method,
			Body:   string(reqBody),
		},
		Body: string(resp.Body),
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return
	}

	entry := strings.Join([]string{
		"Request: " + method + " " + target,
		"Payload: " + payload,
		"Params: " + paramsJSON,
		"Response: " + string(recordJSON),
	}, "\n")

	c.logger.InfoContext(ctx, entry, slog.String("registry", c.name))
}
