package twitter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ptypes "github.com/geomashup/geofeed-backend/internal/provider/types"
	qtypes "github.com/geomashup/geofeed-backend/internal/query/types"
)

// defaultTokenValidity is assumed when the exchange response does not
// report its own validity window.
const defaultTokenValidity = time.Hour

// tokenResponse is the credential exchange response body
type tokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Exchange trades the fixed application key/secret pair for a fresh bearer
// credential. The expiry is computed from the instant the request was
// issued, so a slow exchange can only shorten the usable window, never
// extend it.
func (c *Client) Exchange(ctx context.Context) (*qtypes.Credential, error) {
	endpoint := c.config.APIHost + "/oauth2/token"
	body := strings.NewReader("grant_type=client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.config.APIKey + ":" + c.config.APISecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	issuedAt := time.Now()

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, &ptypes.ProviderError{
			Provider: c.config.ID,
			Code:     "TOKEN_REQUEST_FAILED",
			Message:  "Failed to execute credential exchange",
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

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ptypes.ErrMissingToken
	}

	validity := defaultTokenValidity
	if token.ExpiresIn > 0 {
		validity = time.Duration(token.ExpiresIn) * time.Second
	}

	return &qtypes.Credential{
		AccessToken: token.AccessToken,
		ExpiresAt:   issuedAt.Add(validity),
	}, nil
}
