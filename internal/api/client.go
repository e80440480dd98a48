package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/wabot/internal/circuitbreaker"
)

// maxResponseBytes caps provider responses so a misbehaving endpoint
// cannot exhaust memory
const maxResponseBytes = 10 << 20

// HTTPClient is the shared doer for all external providers: one timeout,
// one circuit breaker per provider
type HTTPClient struct {
	http    *http.Client
	breaker *circuitbreaker.Breaker
}

// NewHTTPClient creates a provider client with the given timeout
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		http: &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Threshold: 5,
			Timeout:   30 * time.Second,
		}),
	}
}

// Get fetches a URL through the circuit breaker and returns the body
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.breaker.Call(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; wabot/1.0)")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		return nil
	})
	return body, err
}

// GetJSON fetches a URL and decodes the JSON response into v
func (c *HTTPClient) GetJSON(ctx context.Context, url string, v interface{}) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
