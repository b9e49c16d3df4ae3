package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"
	qtypes "github.com/geomashup/geofeed-backend/internal/query/types"
	"github.com/tidwall/gjson"
)

// searchRequest is the search endpoint request body
type searchRequest struct {
	Query string `json:"query"`
}

// textPaths are the places a result's body text can live, from fullest to
// plainest; the first non-empty one wins.
var textPaths = []string{
	"retweeted_status.extended_tweet.full_text",
	"extended_tweet.full_text",
	"text",
}

// Search runs a structured query under the given bearer token and returns
// the result items. Items without a geo place are dropped since nothing
// downstream can map them.
func (c *Client) Search(ctx context.Context, accessToken, query string) ([]qtypes.Post, error) {
	endpoint := fmt.Sprintf("%s/1.1/tweets/search/30day/%s.json", c.config.APIHost, c.searchLabel)

	reqBody, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, &ptypes.ProviderError{
			Provider: c.config.ID,
			Code:     "SEARCH_REQUEST_FAILED",
			Message:  "Failed to execute search request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ptypes.ProviderError{
			Provider: c.config.ID,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(respBody),
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	return parseResults(respBody)
}

// parseResults extracts posts from the raw search response
func parseResults(body []byte) ([]qtypes.Post, error) {
	if !gjson.ValidBytes(body) {
		return nil, ptypes.ErrInvalidResponse
	}

	results := gjson.GetBytes(body, "results")
	if !results.Exists() {
		// The provider answers with no results field for some empty
		// queries; treat it the same as zero results.
		return nil, nil
	}

	var posts []qtypes.Post
	results.ForEach(func(_, item gjson.Result) bool {
		location := item.Get("place.full_name").String()
		if location == "" {
			return true
		}

		text := ""
		for _, path := range textPaths {
			if v := item.Get(path); v.Exists() && v.String() != "" {
				text = v.String()
				break
			}
		}

		posts = append(posts, qtypes.Post{
			ID:       item.Get("id_str").String(),
			Author:   item.Get("user.name").String(),
			Text:     text,
			Location: location,
		})
		return true
	})

	return posts, nil
}
