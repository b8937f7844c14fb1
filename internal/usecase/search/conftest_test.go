package search

import (
	"context"

	"github.com/casavec/propmatch/internal/domain/property"
)

// --- Mocks ---

type mockRepo struct {
	searchKNNFn    func(ctx context.Context, vector []float32, k int) ([]property.Candidate, error)
	searchActiveFn func(ctx context.Context, f property.Filters, limit int, byPrice bool) ([]property.Candidate, error)
}

func (m *mockRepo) SearchKNN(ctx context.Context, vector []float32, k int) ([]property.Candidate, error) {
	return m.searchKNNFn(ctx, vector, k)
}

func (m *mockRepo) SearchActive(ctx context.Context, f property.Filters, limit int, byPrice bool) ([]property.Candidate, error) {
	return m.searchActiveFn(ctx, f, limit, byPrice)
}

type mockEmbedder struct {
	forQueryFn func(ctx context.Context, query string) ([]float32, error)
}

func (m *mockEmbedder) ForQuery(ctx context.Context, query string) ([]float32, error) {
	return m.forQueryFn(ctx, query)
}

func activeCandidate(id string, distance float64, price float64, remarks string) property.Candidate {
	return property.Candidate{
		ID:       id,
		Distance: distance,
		Record: property.Record{
			ID:      id,
			Price:   price,
			Status:  property.StatusActive,
			Remarks: remarks,
		},
	}
}
