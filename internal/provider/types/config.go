package types

import "time"

// ProviderID identifies an external provider
type ProviderID string

const (
	ProviderTwitter   ProviderID = "twitter"
	ProviderStaticMap ProviderID = "staticmap"
)

// ProviderConfig represents an external provider configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`

	// API settings
	APIHost   string `json:"api_host" yaml:"api_host"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`

	// Optional settings
	Timeout    time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxRetries int           `json:"max_retries,omitempty" yaml:"max_retries,omitempty"` // default: 3
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	// The credential exchange needs both halves of the application secret
	if c.ID == ProviderTwitter && c.APISecret == "" {
		return ErrMissingAPISecret
	}

	return nil
}
