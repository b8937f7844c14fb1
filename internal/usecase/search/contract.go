package search

import (
	"context"

	"github.com/casavec/propmatch/internal/domain/property"
)

// Repository defines the storage contract for both search paths.
type Repository interface {
	// SearchKNN returns up to k active candidates by ascending combined-vector
	// cosine distance.
	SearchKNN(ctx context.Context, vector []float32, k int) ([]property.Candidate, error)

	// SearchActive returns up to limit active candidates matching the
	// structured filter predicate, optionally ordered ascending by price.
	SearchActive(ctx context.Context, f property.Filters, limit int, byPrice bool) ([]property.Candidate, error)
}

// QueryEmbedder vectorizes query text. An empty vector with a nil error
// means the input was degenerate.
type QueryEmbedder interface {
	ForQuery(ctx context.Context, query string) ([]float32, error)
}
