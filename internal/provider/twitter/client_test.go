package twitter

import (
	"context"
	"encoding/base64"
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
		ID:         ptypes.ProviderTwitter,
		Name:       "Twitter",
		APIHost:    host,
		APIKey:     "consumer-key",
		APISecret:  "consumer-secret",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.com"), "dev")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_MissingLabel(t *testing.T) {
	_, err := NewClient(testConfig("https://api.example.com"), "")
	assert.Error(t, err)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	config := testConfig("https://api.example.com")
	config.APISecret = ""
	_, err := NewClient(config, "dev")
	assert.Error(t, err)
}

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth2/token", r.URL.Path)

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("consumer-key:consumer-secret"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"bearer","access_token":"tok-123","expires_in":7200}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	before := time.Now()
	cred, err := client.Exchange(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cred.AccessToken)
	assert.WithinDuration(t, before.Add(2*time.Hour), cred.ExpiresAt, 5*time.Second)
}

func TestExchange_DefaultValidity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"bearer","access_token":"tok-123"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	before := time.Now()
	cred, err := client.Exchange(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Hour), cred.ExpiresAt, 5*time.Second)
}

func TestExchange_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	_, err = client.Exchange(context.Background())
	assert.Error(t, err)
}

func TestExchange_MissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	_, err = client.Exchange(context.Background())
	assert.ErrorIs(t, err, ptypes.ErrMissingToken)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/1.1/tweets/search/30day/dev.json", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{
					"id_str": "1",
					"user": {"name": "alice"},
					"text": "short text",
					"place": {"full_name": "Queens, NY"}
				},
				{
					"id_str": "2",
					"user": {"name": "bob"},
					"text": "truncated...",
					"extended_tweet": {"full_text": "the whole long text"},
					"place": {"full_name": "Bronx, NY"}
				},
				{
					"id_str": "3",
					"user": {"name": "carol"},
					"text": "RT truncated...",
					"retweeted_status": {"extended_tweet": {"full_text": "original full text"}},
					"place": {"full_name": "Harlem, NY"}
				},
				{
					"id_str": "4",
					"user": {"name": "dave"},
					"text": "no place on this one"
				}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	posts, err := client.Search(context.Background(), "tok-123", "weather lang:en has:geo")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, "short text", posts[0].Text)
	assert.Equal(t, "Queens, NY", posts[0].Location)

	// Longer text variants win over the plain text field.
	assert.Equal(t, "the whole long text", posts[1].Text)
	assert.Equal(t, "original full text", posts[2].Text)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), "dev")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "tok-123", "weather has:geo")
	assert.Error(t, err)
}

func TestParseResults(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "empty results array",
			body: `{"results": []}`,
			want: 0,
		},
		{
			name: "missing results field",
			body: `{}`,
			want: 0,
		},
		{
			name:    "invalid json",
			body:    `{"results": [`,
			wantErr: true,
		},
		{
			name: "geo-less items skipped",
			body: `{"results": [{"id_str":"1","text":"a"},{"id_str":"2","text":"b","place":{"full_name":"Tokyo"}}]}`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := parseResults([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}
}
