package registry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

//go:generate mockgen -source=transport.go -destination=mocks/mocks.go -package=mocks Transport

// Request is the wire-level request handed to a Transport. Body is the
// already-encoded JSON payload, nil for body-less verbs.
type Request struct {
	Method string
	URL    string
	Params url.Values
	Header http.Header
	Body   []byte
}

// Response is the raw outcome of a Transport send. Body is the full response
// body; Code the HTTP status.
type Response struct {
	Code int
	Body []byte
}

// Transport sends a single request and returns the raw response. The host
// environment may supply its own implementation; HTTPTransport is the
// default. Cancellation and per-request timeouts are the transport's
// responsibility, not this layer's.
type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// HTTPTransport is the net/http-backed Transport used in production.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport builds a transport with a pooled client. A zero timeout
// means no client-side deadline.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (*Response, error) {
	target := req.URL
	if len(req.Params) > 0 {
		target = target + "?" + req.Params.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	return &Response{Code: resp.StatusCode, Body: respBody}, nil
}
