package staticmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"
)

// Options carries the fixed styling parameters applied to every map.
type Options struct {
	Zoom        int
	Size        string
	MapType     string
	MarkerLabel string
}

// DefaultOptions returns the styling used when none is configured
func DefaultOptions() Options {
	return Options{
		Zoom:    10,
		Size:    "600x300",
		MapType: "roadmap",
	}
}

// Client fetches static map images for location names.
type Client struct {
	config     *ptypes.ProviderConfig
	opts       Options
	httpClient *http.Client
}

// NewClient creates a static map client
func NewClient(config *ptypes.ProviderConfig, opts Options) (*Client, error) {
	if config.ID == "" {
		config.ID = ptypes.ProviderStaticMap
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if opts.Zoom == 0 {
		opts.Zoom = DefaultOptions().Zoom
	}
	if opts.Size == "" {
		opts.Size = DefaultOptions().Size
	}
	if opts.MapType == "" {
		opts.MapType = DefaultOptions().MapType
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		opts:   opts,
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

// mapURL builds the request URL for one location, centering the map on it
// and dropping a marker at the same spot
func (c *Client) mapURL(location string) string {
	marker := fmt.Sprintf("color:blue|%s", location)
	if c.opts.MarkerLabel != "" {
		marker = fmt.Sprintf("color:blue|label:%s|%s", c.opts.MarkerLabel, location)
	}

	params := url.Values{}
	params.Set("center", location)
	params.Set("zoom", strconv.Itoa(c.opts.Zoom))
	params.Set("size", c.opts.Size)
	params.Set("maptype", c.opts.MapType)
	params.Set("markers", marker)
	params.Set("key", c.config.APIKey)

	return c.config.APIHost + "/maps/api/staticmap?" + params.Encode()
}

// Fetch downloads one static map image for a location key. It returns the
// raw image bytes and the content type reported by the provider.
func (c *Client) Fetch(ctx context.Context, locationKey string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.mapURL(locationKey), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create map request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &ptypes.ProviderError{
			Provider: c.config.ID,
			Code:     "MAP_REQUEST_FAILED",
			Message:  "Failed to fetch static map",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", &ptypes.ProviderError{
			Provider: c.config.ID,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read map response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}
