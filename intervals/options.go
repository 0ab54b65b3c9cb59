package intervals

import (
	"net/http"
	"strings"
	"time"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client used for requests.
// If this is not provided, a default http.Client is used.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the default intervals.icu API base URL.
// This is primarily useful for testing or connecting to a proxy.
func WithBaseURL(url string) Option {
	return func(client *Client) {
		client.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithAthlete sets the default athlete id substituted into resource paths.
// If this is not provided, the literal "me" (the key's own athlete) is used.
func WithAthlete(id string) Option {
	return func(client *Client) {
		client.athleteID = id
	}
}

// WithTimeout sets the per-request timeout. The default is 10 seconds.
// On timeout the call fails with a CodeTimeout *Error.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithRateLimiting enables client-side request throttling against the
// published quota. Disabled by default: the client normally sends requests
// immediately and only observes the quota headers.
func WithRateLimiting(enabled bool) Option {
	return func(client *Client) {
		client.rateLimiter.SetAutoLimiting(enabled)
	}
}

// WithLogger installs a debug logger for request/response lines.
// No logging occurs by default.
func WithLogger(l Logger) Option {
	return func(client *Client) {
		client.logger = l
	}
}
