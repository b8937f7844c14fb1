// Package match holds the ranked result type shared by both search paths.
package match

import "github.com/casavec/propmatch/internal/domain/property"

// Result is a single ranked property hit. Both the vector path and the
// fallback path produce the same shape so callers never see which path
// served them.
type Result struct {
	propertyID string
	similarity float64
	distance   float64
	record     property.Record

	mustHaveMatches   []string
	niceToHaveMatches []string
	composite         float64
}

// New creates a result from a vector-path hit. Similarity is
// 1 − cosine distance, clamped to [0,1].
func New(propertyID string, distance float64, rec property.Record) Result {
	return Result{
		propertyID: propertyID,
		similarity: clamp01(1 - distance),
		distance:   distance,
		record:     rec,
	}
}

// NewFallback creates a result from the fallback path with the placeholder
// score, so the result shape matches the vector path uniformly.
func NewFallback(propertyID string, rec property.Record, score float64) Result {
	return Result{
		propertyID: propertyID,
		similarity: clamp01(score),
		distance:   clamp01(1 - score),
		record:     rec,
	}
}

// WithRequirements returns a copy annotated with requirement-match terms
// and the composite score.
func (r Result) WithRequirements(mustHave, niceToHave []string, composite float64) Result {
	r.mustHaveMatches = mustHave
	r.niceToHaveMatches = niceToHave
	r.composite = clamp01(composite)
	return r
}

// PropertyID returns the matched property identifier.
func (r Result) PropertyID() string { return r.propertyID }

// Similarity returns the similarity score in [0,1].
func (r Result) Similarity() float64 { return r.similarity }

// Distance returns the vector distance (placeholder on the fallback path).
func (r Result) Distance() float64 { return r.distance }

// Record returns the property snapshot the result was scored against.
func (r Result) Record() property.Record { return r.record }

// MustHaveMatches returns the matched must-have terms.
func (r Result) MustHaveMatches() []string { return r.mustHaveMatches }

// NiceToHaveMatches returns the matched nice-to-have terms.
func (r Result) NiceToHaveMatches() []string { return r.niceToHaveMatches }

// CompositeScore returns the weighted requirement score in [0,1].
func (r Result) CompositeScore() float64 { return r.composite }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
