package types

import "strings"

// Post is a single search result. Text carries the fullest body the
// provider exposed; Location is the place display name of the geo tag.
type Post struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Text     string `json:"text"`
	Location string `json:"location"`
}

// LocationKey derives the image cache key for this post's place:
// the display name with all whitespace removed.
func (p *Post) LocationKey() string {
	return LocationKey(p.Location)
}

// LocationKey normalizes a place display name into an image cache key.
func LocationKey(location string) string {
	return strings.Join(strings.Fields(location), "")
}

// DistinctLocationKeys returns each location key once, in order of first
// appearance across the given posts. Posts without a location are skipped.
func DistinctLocationKeys(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	keys := make([]string, 0, len(posts))
	for i := range posts {
		key := posts[i].LocationKey()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
