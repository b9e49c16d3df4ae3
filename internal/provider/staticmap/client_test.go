package staticmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(host string) *ptypes.ProviderConfig {
	return &ptypes.ProviderConfig{
		ID:         ptypes.ProviderStaticMap,
		Name:       "Static Maps",
		APIHost:    host,
		APIKey:     "maps-key",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/staticmap", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "Queens,NY", q.Get("center"))
		assert.Equal(t, "10", q.Get("zoom"))
		assert.Equal(t, "600x300", q.Get("size"))
		assert.Equal(t, "roadmap", q.Get("maptype"))
		assert.Equal(t, "color:blue|Queens,NY", q.Get("markers"))
		assert.Equal(t, "maps-key", q.Get("key"))

		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), DefaultOptions())
	require.NoError(t, err)

	data, contentType, err := client.Fetch(context.Background(), "Queens,NY")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestFetch_MarkerLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "color:blue|label:S|Tokyo", r.URL.Query().Get("markers"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MarkerLabel = "S"
	client, err := NewClient(testConfig(server.URL), opts)
	require.NoError(t, err)

	_, _, err = client.Fetch(context.Background(), "Tokyo")
	require.NoError(t, err)
}

func TestFetch_DefaultContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Content-Type header set by the handler.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("bytes"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), DefaultOptions())
	require.NoError(t, err)

	_, contentType, err := client.Fetch(context.Background(), "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), DefaultOptions())
	require.NoError(t, err)

	_, _, err = client.Fetch(context.Background(), "Tokyo")
	assert.Error(t, err)

	var provErr *ptypes.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "HTTP_403", provErr.Code)
}

func TestNewClient_OptionDefaults(t *testing.T) {
	client, err := NewClient(testConfig("https://maps.example.com"), Options{})
	require.NoError(t, err)

	assert.Equal(t, 10, client.opts.Zoom)
	assert.Equal(t, "600x300", client.opts.Size)
	assert.Equal(t, "roadmap", client.opts.MapType)
}
