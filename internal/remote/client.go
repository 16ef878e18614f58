// Package remote talks to the upstream donation backend. Every call is
// bounded by a timeout; any transport failure or non-2xx response is
// reported as an error so the facade can fall back to the local store.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"sustainshare/internal/cache"
)

const healthCacheKey = "upstream:healthy"

// Client issues requests against the upstream REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Client
	healthTTL  time.Duration
}

// NewClient builds an upstream client. The cache, when available, memoizes
// the health probe result so every request does not re-ping a dead backend.
func NewClient(baseURL string, timeout time.Duration, cacheClient *cache.Client, healthTTL time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cacheClient,
		healthTTL:  healthTTL,
	}
}

// Healthy probes the upstream /health endpoint. Results are cached for a
// short window; a cached verdict is served without touching the network.
func (c *Client) Healthy(ctx context.Context) bool {
	if data, _ := c.cache.Get(ctx, healthCacheKey); data != nil {
		return string(data) == "1"
	}

	healthy := false
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err == nil {
		resp, err := c.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			healthy = resp.StatusCode == http.StatusOK
		}
	}

	verdict := []byte("0")
	if healthy {
		verdict = []byte("1")
	}
	_ = c.cache.Set(ctx, healthCacheKey, verdict, c.healthTTL)

	if !healthy {
		slog.Info("upstream unavailable, serving from local store", "upstream", c.baseURL)
	}
	return healthy
}

// Do issues a request against the upstream API and returns the response
// body. A non-2xx status is an error; callers treat every error here as a
// transport failure.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if !c.Healthy(ctx) {
		return nil, fmt.Errorf("upstream %s unavailable", c.baseURL)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream %s %s: status %d", method, path, resp.StatusCode)
	}
	return payload, nil
}
