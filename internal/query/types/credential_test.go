package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_Valid(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cred *Credential
		want bool
	}{
		{
			name: "valid credential",
			cred: &Credential{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)},
			want: true,
		},
		{
			name: "expired credential",
			cred: &Credential{AccessToken: "tok", ExpiresAt: now.Add(-time.Second)},
			want: false,
		},
		{
			name: "expires exactly now",
			cred: &Credential{AccessToken: "tok", ExpiresAt: now},
			want: false,
		},
		{
			name: "empty token",
			cred: &Credential{AccessToken: "", ExpiresAt: now.Add(time.Hour)},
			want: false,
		},
		{
			name: "nil credential",
			cred: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.Valid(now))
		})
	}
}
