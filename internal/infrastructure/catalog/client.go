package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/matchasource/backend/internal/domain"
)

const maxAttempts = 3

// Client is the HTTP candidate supplier backed by the internal catalog service.
// It applies the effective constraints as a server-side pre-filter and returns a
// recency-ordered, slightly over-fetched page of candidates plus a total count.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new catalog service client
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// The catalog service budget for search traffic is 50 req/s per consumer
	limiter := rate.NewLimiter(rate.Limit(50), 100)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// FetchCandidates asks the catalog service for candidates matching the
// constraint predicate. Transient failures are retried with exponential backoff;
// client-side errors from the catalog are not.
func (c *Client) FetchCandidates(ctx context.Context, constraints domain.EffectiveConstraints, skip, take int) ([]domain.Candidate, int, error) {
	payload, err := json.Marshal(buildSearchRequest(constraints, skip, take))
	if err != nil {
		return nil, 0, fmt.Errorf("marshal catalog request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/products/search", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			c.logger.Warn("catalog request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			if attempt < maxAttempts {
				sleepWithContext(ctx, exponentialBackoff(attempt))
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			// Only server-side failures are worth retrying
			if resp.StatusCode < http.StatusInternalServerError {
				return nil, 0, lastErr
			}
			c.logger.Warn("catalog returned server error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
			)
			if attempt < maxAttempts {
				sleepWithContext(ctx, exponentialBackoff(attempt))
			}
			continue
		}

		var searchResp searchResponseDTO
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, 0, fmt.Errorf("decode catalog response: %w", err)
		}

		return mapToCandidates(searchResp.Items), searchResp.Total, nil
	}

	return nil, 0, lastErr
}

// doRequest executes an HTTP POST request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MatchaSource/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// exponentialBackoff returns the wait before the next retry: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// sleepWithContext waits for the backoff duration unless the context ends first
func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
