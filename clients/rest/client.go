package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/samber/mo"

	"dnabot/core"
)

// HeaderOverrides customises headers for a single call.
// mo.Some sets or replaces a header, mo.None removes a base header.
type HeaderOverrides map[string]mo.Option[string]

// Client is a thin JSON-over-HTTP facade with an immutable set of base headers.
// A Client is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	baseHeaders map[string]string
}

// NewClient creates a client rooted at baseURL. The header map is copied.
func NewClient(baseURL string, baseHeaders map[string]string, sslVerify bool, timeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !sslVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // controllers commonly use self-signed certs
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout, Transport: transport},
		baseURL:     strings.TrimRight(baseURL, "/"),
		baseHeaders: maps.Clone(baseHeaders),
	}
}

// WithHeaders returns a copy of the client with extra base headers installed
func (c *Client) WithHeaders(headers map[string]string) *Client {
	merged := maps.Clone(c.baseHeaders)
	if merged == nil {
		merged = make(map[string]string, len(headers))
	}
	maps.Copy(merged, headers)

	return &Client{
		httpClient:  c.httpClient,
		baseURL:     c.baseURL,
		baseHeaders: merged,
	}
}

// BaseURL returns the URL every request path is resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Headers returns a copy of the client's base headers
func (c *Client) Headers() map[string]string {
	return maps.Clone(c.baseHeaders)
}

// Get issues a GET request and returns the decoded JSON body
func (c *Client) Get(ctx context.Context, path string, overrides HeaderOverrides) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, overrides)
}

// Post issues a POST request and returns the decoded JSON body
func (c *Client) Post(
	ctx context.Context,
	path string,
	body io.Reader,
	overrides HeaderOverrides,
) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body, overrides)
}

// Do sends a prepared request through the client's transport, applying base headers
// and overrides. It is used by callers that need a custom body encoding.
func (c *Client) Do(req *http.Request, overrides HeaderOverrides) (json.RawMessage, error) {
	for name, value := range MergeHeaders(c.baseHeaders, overrides) {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}
	return c.send(req)
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	overrides HeaderOverrides,
) (json.RawMessage, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &core.TransportError{Method: method, URL: url, Err: err}
	}
	for name, value := range MergeHeaders(c.baseHeaders, overrides) {
		req.Header.Set(name, value)
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	method, url := req.Method, req.URL.String()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &core.TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status, body: %s", truncate(string(payload), 512)),
		}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(payload) {
		return nil, &core.TransportError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body is not valid JSON"),
		}
	}

	return json.RawMessage(payload), nil
}

// MergeHeaders returns a fresh header map: base headers with overrides applied.
// Neither input is modified.
func MergeHeaders(base map[string]string, overrides HeaderOverrides) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for name, value := range base {
		merged[http.CanonicalHeaderKey(name)] = value
	}
	for name, override := range overrides {
		key := http.CanonicalHeaderKey(name)
		if value, ok := override.Get(); ok {
			merged[key] = value
		} else {
			delete(merged, key)
		}
	}
	return merged
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
