package db

import (
	"fmt"
	"strings"
)

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Prefilter    string // FT pre-filter query, "" means match all
	Vector       []float32
	K            int
	ReturnFields []string
}

// FilterQuery is the input for a pure structured filter search, no vector
// predicate. SortBy orders server-side (used for the price-ordered fallback).
type FilterQuery struct {
	IndexName    string
	Query        string // FT filter query, "" means match all
	SortBy       string
	SortAsc      bool
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64 // cosine similarity for KNN hits, 0 otherwise
	Fields map[string]string
}

// --- Filter query string helpers ---

// TagFilter builds an FT tag clause: one value matches exactly, multiple
// values form an OR group.
func TagFilter(key string, values ...string) string {
	if len(values) == 0 {
		return ""
	}
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		escaped = append(escaped, tagEscaper.Replace(v))
	}
	if len(escaped) == 0 {
		return ""
	}
	return fmt.Sprintf("@%s:{%s}", key, strings.Join(escaped, "|"))
}

// NumericRange builds an FT numeric clause with inclusive bounds;
// nil means unbounded.
func NumericRange(key string, gte, lte *float64) string {
	minBound := "-inf"
	maxBound := "+inf"
	if gte != nil {
		minBound = fmt.Sprintf("%g", *gte)
	}
	if lte != nil {
		maxBound = fmt.Sprintf("%g", *lte)
	}
	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

// And joins non-empty clauses into one FT conjunction.
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)
