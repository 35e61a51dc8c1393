package nina

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

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public Nina API host
	DefaultBaseURL = "https://api.ninaprotocol.com"
	// DefaultLimit is the page size used when a list call passes 0
	DefaultLimit = 20
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency bounds the batch helpers
	DefaultConcurrency = 5

	apiPrefix = "/v1"
)

// Version is reported in the default User-Agent
var Version = "dev"

// Client represents a Nina API client
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	defaultLimit int
	concurrency  int
	timeout      time.Duration
	logger       zerolog.Logger
}

// Compile-time check that Client satisfies API.
var _ API = (*Client)(nil)

// NewClient creates a new Nina client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, baseURL)
	}

	// Accept both "https://host" and "https://host/v1/"
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, apiPrefix)

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:    "nina-go/" + Version,
		defaultLimit: DefaultLimit,
		concurrency:  DefaultConcurrency,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Applied to a copy so a client passed in through WithHTTPClient is left untouched
	if client.timeout > 0 {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}

	if client.defaultLimit <= 0 {
		return nil, fmt.Errorf("%w: default limit must be positive, got %d", ErrInvalidConfig, client.defaultLimit)
	}
	if client.concurrency <= 0 {
		return nil, fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, client.concurrency)
	}

	return client, nil
}

// BaseURL returns the API host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TestConnection checks that the API answers a minimal list request
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := fetch(ctx, c, request{
		op:     "TestConnection",
		method: http.MethodGet,
		path:   "/hubs",
		params: url.Values{"limit": {"1"}},
	}, pageOf[Hub]("hubs"))
	return err
}

// request describes one API call
type request struct {
	op     string // endpoint name used in logs and errors
	method string
	path   string
	params url.Values
	body   any
}

// do performs an HTTP request and returns the body of a 200 response
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	endpoint := c.baseURL + apiPrefix + req.path
	if len(req.params) > 0 {
		endpoint += "?" + req.params.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request body: %w", req.op, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", req.op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("endpoint", req.op).
		Str("method", req.method).
		Str("url", endpoint).
		Msg("Making Nina API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", req.op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", req.op, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("endpoint", req.op).
			Int("status", resp.StatusCode).
			Msgf("%s responded with a %d error", req.op, resp.StatusCode)

		return nil, &APIError{
			Endpoint:   req.op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, respBody),
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// fetch performs req and decodes a successful body with decode
func fetch[T any](ctx context.Context, c *Client, req request, decode func([]byte) (T, error)) (T, error) {
	var zero T

	body, err := c.do(ctx, req)
	if err != nil {
		return zero, err
	}

	v, err := decode(body)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", req.op, err)
	}
	return v, nil
}

// get fetches a single resource at path
func get[T any](ctx context.Context, c *Client, op, path string, decode func([]byte) (T, error)) (T, error) {
	return fetch(ctx, c, request{op: op, method: http.MethodGet, path: path}, decode)
}

// list fetches one page of a list endpoint, honoring limit
func list[T any](ctx context.Context, c *Client, op, path, key string, limit int) (*Page[T], error) {
	if limit < 0 {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = c.defaultLimit
	}

	page, err := fetch(ctx, c, request{
		op:     op,
		method: http.MethodGet,
		path:   path,
		params: url.Values{"limit": {strconv.Itoa(limit)}},
	}, pageOf[T](key))
	if err != nil {
		return nil, err
	}

	if len(page.Items) > limit {
		page.Items = page.Items[:limit]
	}

	c.logger.Debug().
		Str("endpoint", op).
		Int("count", len(page.Items)).
		Int("total", page.Total).
		Msg("Retrieved page from Nina")

	return page, nil
}

// document decodes the whole response body
func document[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// member returns a decoder for the value stored under key
func member[T any](key string) func([]byte) (T, error) {
	return func(data []byte) (T, error) {
		var v T
		envelope, err := decodeEnvelope(data)
		if err != nil {
			return v, err
		}
		if err := decodeMember(envelope, key, &v); err != nil {
			return v, err
		}
		return v, nil
	}
}

// pageOf returns a decoder for {key: [...], total: n}
func pageOf[T any](key string) func([]byte) (*Page[T], error) {
	return func(data []byte) (*Page[T], error) {
		envelope, err := decodeEnvelope(data)
		if err != nil {
			return nil, err
		}

		var items []T
		if err := decodeMember(envelope, key, &items); err != nil {
			return nil, err
		}
		var total flexInt
		if err := decodeMember(envelope, "total", &total); err != nil {
			return nil, err
		}

		return &Page[T]{Items: orEmpty(items), Total: int(total)}, nil
	}
}

func decodeEnvelope(data []byte) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return envelope, nil
}

func decodeMember(envelope map[string]json.RawMessage, key string, v any) error {
	raw, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &MissingFieldError{Type: "response", Field: key}
	}
	return json.Unmarshal(raw, v)
}

// resourcePath joins a resource, an escaped key and optional sub-resources
func resourcePath(resource, key string, sub ...string) string {
	parts := append([]string{"", resource, url.PathEscape(key)}, sub...)
	return strings.Join(parts, "/")
}

func requireKey(op, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}
	return nil
}

// errorMessage extracts a message from an error body, falling back to the status text
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(status)
}
