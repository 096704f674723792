// Package upstream provides typed HTTP clients for the Java REST backend and
// the ML recommendation backend, with hard per-request timeouts, envelope
// normalization and a typed error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Java backend base URL used when none is configured.
const DefaultBaseURL = "http://localhost:8090/api"

// DefaultTimeout bounds requests that don't carry an explicit budget,
// i.e. the follow/unfollow mutations.
const DefaultTimeout = 10 * time.Second

// Client talks to the Java REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a backend client for the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log.With().Str("component", "upstream").Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON performs a GET against the backend with a hard timeout and returns
// the raw response body. Non-2xx responses and timeouts come back as typed
// errors; the body is never interpreted here beyond error decoding.
func (c *Client) GetJSON(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, timeout)
}

// do executes a request against the backend and classifies failures.
func (c *Client) do(ctx context.Context, method, path string, body []byte, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Backend request failed")
		return nil, &Error{ErrorClass: ErrorClassNetwork, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &Error{ErrorClass: ErrorClassNetwork, Message: "read response body", Err: err}
	}

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		upErr := decodeError(resp.StatusCode, data)
		errorsTotal.WithLabelValues(string(classify(resp.StatusCode))).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("Backend request error")
		return nil, upErr
	}

	return data, nil
}
