package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/casavec/propmatch/internal/domain/match"
	"github.com/casavec/propmatch/internal/domain/property"
	"github.com/casavec/propmatch/internal/normalize"
)

// DefaultFallbackScore is the placeholder similarity attached to fallback
// results so the result shape matches the vector path uniformly. The value
// has no derivation; it is kept for parity with historical behavior.
const DefaultFallbackScore = 0.8

// defaultKeywords is the fixed vocabulary of generic desirability terms
// used when no query text is supplied. A default-interest heuristic: it
// ranks matching candidates first rather than excluding the rest.
var defaultKeywords = []string{
	"deck", "view", "luxury", "fireplace", "pool", "garage",
	"garden", "waterfront", "renovated", "hardwood", "granite", "balcony",
}

// Fallback is the deterministic search engine used whenever the vector
// path is unavailable, erroring, or empty.
type Fallback struct {
	repo  Repository
	score float64
}

// NewFallback creates a fallback engine with the given placeholder score.
func NewFallback(repo Repository, score float64) *Fallback {
	if score <= 0 || score > 1 {
		score = DefaultFallbackScore
	}
	return &Fallback{repo: repo, score: score}
}

// Search runs the structured filter query and keyword-matches candidate
// text blobs. With no query text, candidates are ordered ascending by
// price and ranked by the default-interest vocabulary.
func (fb *Fallback) Search(
	ctx context.Context, f property.Filters, limit int, queryText string,
) ([]match.Result, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	terms := strings.Fields(strings.ToLower(queryText))
	byPrice := len(terms) == 0

	candidates, err := fb.repo.SearchActive(ctx, f, limit*2, byPrice)
	if err != nil {
		return nil, fmt.Errorf("fallback search: %w", err)
	}

	// Server-side predicate covered status, price, beds/baths, and type;
	// the location substring check still runs locally.
	located := candidates[:0:0]
	for _, c := range candidates {
		if f.Matches(c.Record) {
			located = append(located, c)
		}
	}

	var kept []property.Candidate
	if len(terms) > 0 {
		kept = keepMatching(located, terms)
	} else {
		// Heuristic, not a filter: candidates hitting the vocabulary rank
		// first, the remaining price-ordered candidates backfill.
		matched := keepMatching(located, defaultKeywords)
		kept = append(matched, subtract(located, matched)...)
	}

	if len(kept) > limit {
		kept = kept[:limit]
	}

	results := make([]match.Result, 0, len(kept))
	for _, c := range kept {
		results = append(results, match.NewFallback(c.ID, c.Record, fb.score))
	}
	return results, nil
}

// keepMatching keeps candidates whose text blob contains at least one of
// the terms (logical OR). Malformed sub-objects in the nested payload
// contribute nothing to the blob.
func keepMatching(cands []property.Candidate, terms []string) []property.Candidate {
	var out []property.Candidate
	for _, c := range cands {
		blob := normalize.SearchBlob(c.Record)
		for _, term := range terms {
			if term != "" && strings.Contains(blob, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// subtract returns the candidates of all not present in picked, in order.
func subtract(all, picked []property.Candidate) []property.Candidate {
	if len(picked) == 0 {
		return all
	}
	seen := make(map[string]struct{}, len(picked))
	for _, c := range picked {
		seen[c.ID] = struct{}{}
	}
	var out []property.Candidate
	for _, c := range all {
		if _, ok := seen[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}
