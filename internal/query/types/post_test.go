package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationKey(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"single word", "Tokyo", "Tokyo"},
		{"spaces removed", "New York, USA", "NewYork,USA"},
		{"mixed whitespace removed", "Rio de\tJaneiro", "RiodeJaneiro"},
		{"leading and trailing whitespace", "  Queens, NY  ", "Queens,NY"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocationKey(tt.location))
		})
	}
}

func TestDistinctLocationKeys(t *testing.T) {
	posts := []Post{
		{ID: "1", Location: "Queens, NY"},
		{ID: "2", Location: "Queens, NY"},
		{ID: "3", Location: "Bronx, NY"},
		{ID: "4", Location: "Queens,  NY"}, // normalizes to the same key
		{ID: "5", Location: ""},
	}

	keys := DistinctLocationKeys(posts)
	assert.Equal(t, []string{"Queens,NY", "Bronx,NY"}, keys)
}

func TestDistinctLocationKeys_Empty(t *testing.T) {
	assert.Empty(t, DistinctLocationKeys(nil))
	assert.Empty(t, DistinctLocationKeys([]Post{{ID: "1", Location: "  "}}))
}

func TestDistinctLocationKeys_Order(t *testing.T) {
	posts := []Post{
		{ID: "1", Location: "B"},
		{ID: "2", Location: "A"},
		{ID: "3", Location: "B"},
		{ID: "4", Location: "C"},
	}
	assert.Equal(t, []string{"B", "A", "C"}, DistinctLocationKeys(posts))
}
