// Package nbastats provides the HTTP client for the stats.nba.com JSON API.
//
// The API has no auth; it only answers requests that look like they come from
// the nba.com site, so every request carries a fixed set of browser headers.
// Requests are spaced by a token bucket limiter and retried with linear
// backoff.
package nbastats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/retry"
)

// DefaultBaseURL is the public stats endpoint root.
const DefaultBaseURL = "https://stats.nba.com/stats"

var defaultHeaders = map[string]string{
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Referer":            "https://www.nba.com/",
	"Origin":             "https://www.nba.com",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
	"Connection":         "keep-alive",
}

// Options configures a Client. Zero values fall back to the defaults noted.
type Options struct {
	BaseURL         string        // DefaultBaseURL
	Timeout         time.Duration // 45s
	RequestInterval time.Duration // courtesy gap between requests; 0 disables
	RetryAttempts   int           // 3
	RetryDelay      time.Duration // linear backoff unit; 0 retries immediately
	HTTPClient      *http.Client
}

// Client is the shared HTTP client for all stats endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	retry      retry.Policy
	logger     *slog.Logger
}

// NewClient creates a stats API client with rate limiting and retries.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    opts.BaseURL,
		limiter:    rate.NewLimiter(rate.Every(opts.RequestInterval), 1),
		logger:     logger,
	}
	c.retry = retry.Policy{
		Attempts: opts.RetryAttempts,
		Delay:    retry.Linear(opts.RetryDelay),
		OnRetry: func(attempt int, err error) {
			c.logger.Warn("stats request failed, retrying",
				"attempt", attempt, "max_attempts", opts.RetryAttempts, "error", err)
		},
	}
	return c
}

// get performs a rate-limited, retried GET and hands the decoded envelope to
// decode. Transport errors, non-200 statuses, undecodable bodies and decode
// failures (a missing table or column) are all retried.
func (c *Client) get(ctx context.Context, path string, params url.Values, decode func(*provider.Response) error) error {
	return c.retry.Do(ctx, func(ctx context.Context) error {
		resp, err := c.getOnce(ctx, path, params)
		if err != nil {
			return err
		}
		return decode(resp)
	})
}

func (c *Client) getOnce(ctx context.Context, path string, params url.Values) (*provider.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Debug("stats request", "path", path, "params", params.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	return provider.DecodeResponse(body)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
