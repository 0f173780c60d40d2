package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/crumb/internal/db"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/recipe"
)

// Search limits
const (
	MaxQueryLength  = 200
	MaxSnippetChars = 160
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query  string // required
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// SearchResultItem wraps a Summary with a plain-text match snippet.
type SearchResultItem struct {
	recipe.Summary
	Snippet string `json:"snippet,omitempty"`
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items      []SearchResultItem `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Sort       string             `json:"sort"`
}

// Search finds recipes whose title, body or source URL contain the query.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}

	limit, offset := clampPage(input.Limit, input.Offset)

	summaries, total, err := db.Search(ctx, database, query, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]SearchResultItem, len(summaries))
	for i, s := range summaries {
		items[i] = SearchResultItem{Summary: s}
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(query)) {
			continue
		}
		// Body matches get a snippet; summaries carry no body, so load it.
		r, err := db.GetByID(ctx, database, s.ID)
		if err != nil {
			return nil, err
		}
		items[i].Snippet = snippet(r.BodyText, query, MaxSnippetChars)
	}

	return &SearchOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}

// snippet returns up to maxChars runes of text centred on the first
// case-insensitive match of query, with "..." marking cut ends. Returns ""
// when text does not contain query.
func snippet(text, query string, maxChars int) string {
	runes := []rune(text)
	lowerRunes := []rune(strings.ToLower(text))
	needle := []rune(strings.ToLower(query))
	if len(lowerRunes) != len(runes) {
		// Lowercasing changed the rune count; match case-sensitively.
		lowerRunes = runes
		needle = []rune(query)
	}

	at := indexRunes(lowerRunes, needle)
	if at < 0 {
		return ""
	}

	start := max(at-(maxChars-len(needle))/2, 0)
	end := min(start+maxChars, len(runes))
	start = max(end-maxChars, 0)

	out := strings.Join(strings.Fields(string(runes[start:end])), " ")
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}

// indexRunes returns the index of the first occurrence of needle in
// haystack, or -1.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
