package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *ProviderConfig
		wantErr error
	}{
		{
			name: "valid twitter config",
			config: &ProviderConfig{
				ID:        ProviderTwitter,
				Name:      "Twitter",
				APIHost:   "https://api.twitter.com",
				APIKey:    "key",
				APISecret: "secret",
			},
			wantErr: nil,
		},
		{
			name: "valid staticmap config without secret",
			config: &ProviderConfig{
				ID:      ProviderStaticMap,
				Name:    "Static Maps",
				APIHost: "https://maps.googleapis.com",
				APIKey:  "key",
			},
			wantErr: nil,
		},
		{
			name: "missing provider ID",
			config: &ProviderConfig{
				Name:    "Test",
				APIHost: "https://api.test.com",
				APIKey:  "key",
			},
			wantErr: ErrInvalidProviderID,
		},
		{
			name: "missing API host",
			config: &ProviderConfig{
				ID:     ProviderTwitter,
				Name:   "Twitter",
				APIKey: "key",
			},
			wantErr: ErrInvalidAPIHost,
		},
		{
			name: "missing API key",
			config: &ProviderConfig{
				ID:      ProviderTwitter,
				Name:    "Twitter",
				APIHost: "https://api.twitter.com",
			},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "twitter missing API secret",
			config: &ProviderConfig{
				ID:      ProviderTwitter,
				Name:    "Twitter",
				APIHost: "https://api.twitter.com",
				APIKey:  "key",
			},
			wantErr: ErrMissingAPISecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
