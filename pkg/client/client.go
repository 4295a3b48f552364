// Package client implements a typed client for the Flex hub REST API.
//
// Every method performs exactly one HTTP request. The client keeps no cache
// and no mutable state, so a single Client may be shared by concurrent
// callers. Timeouts and cancellation come from the caller's context or from
// the http.Client supplied with WithHTTPClient; none are imposed by default.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept in a StatusError
const maxErrorBody = 4096

// Client manages communication with a Flex hub
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	transport  http.RoundTripper
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTransport replaces the transport of the client's http.Client,
// whatever order it is given in relative to WithHTTPClient.
// The http.Client passed to WithHTTPClient is copied, not modified.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client bound to baseURL. The base may be a bare origin
// ("http://localhost:7111") or include a path prefix ("https://host/flex/");
// API paths are resolved under it.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport != nil {
		hc := *c.httpClient
		hc.Transport = c.transport
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint appends an already-escaped path to the base URL. Reference
// resolution is avoided so dot segments inside ids are not collapsed.
func (c *Client) endpoint(ref string, query url.Values) (string, error) {
	path, err := url.PathUnescape(ref)
	if err != nil {
		return "", fmt.Errorf("invalid API path %q: %w", ref, err)
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawPath = c.baseURL.EscapedPath() + ref
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// escapeSegment escapes s as a single path segment. "." and ".." are
// percent-encoded so they are not read as dot segments.
func escapeSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

// do sends a GET request and returns the response regardless of its status
func (c *Client) do(ctx context.Context, ref string, query url.Values, accept string) (*http.Response, error) {
	endpoint, err := c.endpoint(ref, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Flex hub: %w", err)
	}
	if resp.Request == nil {
		resp.Request = req
	}
	return resp, nil
}

// getJSON fetches ref and decodes a successful response body into v.
// Non-2xx responses are never decoded.
func (c *Client) getJSON(ctx context.Context, ref string, query url.Values, v interface{}) error {
	resp, err := c.do(ctx, ref, query, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(v); err != nil {
		return &DecodeError{URL: resp.Request.URL.String(), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &DecodeError{URL: resp.Request.URL.String(), Err: errors.New("unexpected data after JSON value")}
	}
	return nil
}

// checkStatus turns a non-2xx response into a StatusError carrying a prefix of the body
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
