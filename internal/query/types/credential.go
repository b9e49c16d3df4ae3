package types

import "time"

// Credential is a bearer token for the search provider plus the absolute
// instant it stops being usable. A credential is replaced wholesale on
// renewal, never mutated.
type Credential struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the credential is usable at the given instant.
func (c *Credential) Valid(now time.Time) bool {
	return c != nil && c.AccessToken != "" && now.Before(c.ExpiresAt)
}
