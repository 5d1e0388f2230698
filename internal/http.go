package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	pkgerrs "github.com/jamesprial/go-subreddit/pkg/errors"
)

const (
	// maxErrorBodyBytes bounds how much of a failed response is kept in a StatusError.
	maxErrorBodyBytes = 512
	// maxUserAgentLength bounds the User-Agent header value.
	maxUserAgentLength = 256
)

// Client issues the GET requests of the subreddit client. It does not own
// the underlying *http.Client, which may be shared with other callers.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient returns a transport over httpClient.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewClient(httpClient *http.Client, userAgent string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		client:    httpClient,
		userAgent: userAgent,
		logger:    logger,
	}
}

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// NewRequest creates a GET request for rawURL. No authentication headers are set.
func (c *Client) NewRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Get sends one GET request and returns the response body. Failures to
// build or send the request, non-2xx statuses and body read errors are
// returned as transport ClientErrors for operation.
func (c *Client) Get(ctx context.Context, operation, rawURL string) ([]byte, error) {
	req, err := c.NewRequest(ctx, rawURL)
	if err != nil {
		return nil, pkgerrs.NewTransportError(operation, rawURL, err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "operation", operation, "url", rawURL, "error", err)
		return nil, pkgerrs.NewTransportError(operation, rawURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"operation", operation,
		"url", rawURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, pkgerrs.NewTransportError(operation, rawURL, &pkgerrs.StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrs.NewTransportError(operation, rawURL, fmt.Errorf("reading response body: %w", err))
	}

	return body, nil
}

// ValidateUserAgent rejects User-Agent values that are empty, too long or
// could inject extra headers.
func ValidateUserAgent(ua string) error {
	if len(ua) == 0 {
		return fmt.Errorf("user agent cannot be empty")
	}
	if strings.ContainsAny(ua, "\r\n") {
		return fmt.Errorf("user agent cannot contain newline characters")
	}
	if len(ua) > maxUserAgentLength {
		return fmt.Errorf("user agent too long (max %d characters)", maxUserAgentLength)
	}
	return nil
}
