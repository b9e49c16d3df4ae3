package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"
)

// Client talks to the social search API: the application-credentials
// exchange and the 30-day search endpoint.
type Client struct {
	config      *ptypes.ProviderConfig
	searchLabel string
	httpClient  *http.Client
}

// NewClient creates a search API client
func NewClient(config *ptypes.ProviderConfig, searchLabel string) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if searchLabel == "" {
		return nil, fmt.Errorf("search environment label is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:      config,
		searchLabel: searchLabel,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// doRequest executes an HTTP request with retry and exponential backoff
func (c *Client) doRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := c.config.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		resp, err := c.httpClient.Do(req.WithContext(ctx))
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if i < maxRetries-1 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}
