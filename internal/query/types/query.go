package types

import (
	"strings"

	"github.com/geomashup/geofeed-backend/internal/pkg/errors"
)

// Category determines how the free text is turned into a provider query.
type Category string

const (
	CategoryKeyword  Category = "keyword"
	CategoryQuote    Category = "quote"
	CategoryHashtag  Category = "hashtag"
	CategoryUsername Category = "username"
)

// Categories enumerates every accepted category.
var Categories = []Category{CategoryKeyword, CategoryQuote, CategoryHashtag, CategoryUsername}

// LangAll matches posts in any language.
const LangAll = "all"

// Languages enumerates every accepted language code.
var Languages = []string{"en", "ja", "pt", "es", "de", "fr", LangAll}

// QueryInput is the validated inbound search request.
type QueryInput struct {
	Text     string `form:"text" json:"text"`
	Category string `form:"type" json:"type"`
	Lang     string `form:"lang" json:"lang"`
}

// Validate rejects missing, blank, or out-of-enumeration input.
func (in *QueryInput) Validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return errors.NewValidationError("text")
	}
	if !validCategory(in.Category) {
		return errors.NewValidationError("type")
	}
	if !validLang(in.Lang) {
		return errors.NewValidationError("lang")
	}
	return nil
}

func validCategory(s string) bool {
	for _, c := range Categories {
		if s == string(c) {
			return true
		}
	}
	return false
}

func validLang(s string) bool {
	for _, l := range Languages {
		if s == l {
			return true
		}
	}
	return false
}

// unsafeKeyChars replaces characters that are not safe in a flat cache key.
var unsafeKeyChars = strings.NewReplacer(
	`\`, "%",
	`/`, "%",
	`^`, "%",
	`:`, "%",
	`*`, "%",
	`?`, "%",
	`"`, "%",
	`<`, "%",
	`>`, "%",
	`|`, "%",
)

// CacheKey derives the normalized search key for this input. Two inputs
// that normalize to the same key share a result cache slot.
func (in *QueryInput) CacheKey() string {
	key := strings.ToLower(strings.TrimSpace(in.Text)) + "-" + in.Category + "-" + in.Lang
	return unsafeKeyChars.Replace(key)
}

// ProviderQuery builds the structured query sent to the search provider.
// Keywords, usernames and hashtags are searched with spaces stripped,
// quotes verbatim; a geo filter is always appended so every result can be
// placed on a map.
func (in *QueryInput) ProviderQuery() string {
	var b strings.Builder

	stripped := strings.ReplaceAll(in.Text, " ", "")
	switch Category(in.Category) {
	case CategoryKeyword:
		b.WriteString(stripped)
	case CategoryUsername:
		b.WriteString("@" + stripped)
	case CategoryHashtag:
		b.WriteString("#" + stripped)
	case CategoryQuote:
		b.WriteString(`"` + in.Text + `"`)
	}

	if in.Lang != LangAll {
		b.WriteString(" lang:" + in.Lang)
	}

	b.WriteString(" has:geo")
	return b.String()
}
