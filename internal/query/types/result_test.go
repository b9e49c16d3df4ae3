package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachedResult_Fresh(t *testing.T) {
	ttl := 15 * time.Minute
	fetched := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	result := &CachedResult{Key: "weather-keyword-en", FetchedAt: fetched}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just written", fetched, true},
		{"one second before expiry", fetched.Add(ttl - time.Second), true},
		{"exactly at expiry", fetched.Add(ttl), false},
		{"past expiry", fetched.Add(ttl + time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, result.Fresh(tt.now, ttl))
		})
	}
}

func TestCachedResult_Fresh_Nil(t *testing.T) {
	var result *CachedResult
	assert.False(t, result.Fresh(time.Now(), time.Minute))
}
