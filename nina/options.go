package nina

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. The client is not
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout, regardless of option order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithDefaultLimit sets the limit used when a list call passes 0.
func WithDefaultLimit(limit int) Option {
	return func(c *Client) {
		c.defaultLimit = limit
	}
}

// WithConcurrency sets how many requests the batch helpers keep in flight.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = n
	}
}
