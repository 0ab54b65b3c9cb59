package intervals

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL   = "https://intervals.icu/api/v1"
	defaultAthleteID = "me"
	defaultTimeout   = 10 * time.Second

	userAgent = "intervals-icu-go/" + Version
)

// Client is the core intervals.icu API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	athleteID  string

	// authHeader is the precomputed Basic credential ("API_KEY:<key>").
	authHeader string

	rateLimits  *rateLimitTracker
	rateLimiter *rateLimiter
	logger      Logger

	// Services used for communicating with the intervals.icu API endpoints.
	Athlete    *AthleteService
	Events     *EventService
	Wellness   *WellnessService
	Workouts   *WorkoutService
	Activities *ActivityService
}

// NewClient creates a new intervals.icu API client authenticated with the
// given API key. The key is encoded once as an HTTP Basic credential with
// username "API_KEY" and attached to every request.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     defaultBaseURL,
		athleteID:   defaultAthleteID,
		authHeader:  "Basic " + base64.StdEncoding.EncodeToString([]byte("API_KEY:"+apiKey)),
		rateLimits:  newRateLimitTracker(),
		rateLimiter: newRateLimiter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Athlete = &AthleteService{client: c}
	c.Events = &EventService{client: c}
	c.Wellness = &WellnessService{client: c}
	c.Workouts = &WorkoutService{client: c}
	c.Activities = &ActivityService{client: c}

	return c
}

// RateLimitRemaining reports the request quota remaining according to the
// most recently received response. ok is false before the first response.
func (c *Client) RateLimitRemaining() (remaining int, ok bool) {
	return c.rateLimits.Remaining()
}

// RateLimitReset reports when the request quota resets according to the
// most recently received response. ok is false before the first response.
func (c *Client) RateLimitReset() (reset time.Time, ok bool) {
	return c.rateLimits.Reset()
}

// Do executes an HTTP request with context, authentication and rate-limit
// header tracking. Any failure, transport-level or HTTP-level, is returned
// as a *Error; raw transport errors never escape this layer.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get("Content-Type") == "" && req.Method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	// Optional local rate limit; disabled unless WithRateLimiting(true).
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("local rate limit wait interrupted: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("request", "method", req.Method, "url", req.URL.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.normalizeTransportError(err)
	}

	// The quota headers arrive on every response, success or failure, and
	// must be recorded before any status handling so a 429 error message
	// can include the reset time just announced.
	c.rateLimits.update(resp.Header)

	if c.logger != nil {
		c.logger.Debug("response", "status", resp.StatusCode, "url", req.URL.String())
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, c.normalizeStatusError(resp.StatusCode, body)
	}

	return resp, nil
}

// call issues a single JSON exchange: method + path relative to the base
// URL, optional query, optional JSON-encoded body, optional JSON-decoded
// result. All service methods funnel through here.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, u, payload)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// callRaw issues an exchange and returns the raw response body, for the
// non-JSON endpoints (CSV stream export).
func (c *Client) callRaw(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// String implements fmt.Stringer, redacting the API key credential.
func (c *Client) String() string {
	return fmt.Sprintf("intervals.Client{baseURL:%s athlete:%s apiKey:<REDACTED>}", c.baseURL, c.athleteID)
}

// GoString implements fmt.GoStringer so %#v does not leak the credential.
func (c *Client) GoString() string {
	return c.String()
}
