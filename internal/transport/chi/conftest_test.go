package chi

import (
	"context"

	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain/match"
	"github.com/casavec/propmatch/internal/domain/property"
	healthuc "github.com/casavec/propmatch/internal/usecase/health"
	ingestuc "github.com/casavec/propmatch/internal/usecase/ingest"
	matcheruc "github.com/casavec/propmatch/internal/usecase/matcher"
	searchuc "github.com/casavec/propmatch/internal/usecase/search"
)

// --- Mocks ---

// Handlers wrap concrete usecase services, so the tests assemble real
// services over function-field mocks at the storage and provider seams.

type mockSearchRepo struct {
	searchKNNFn    func(ctx context.Context, vector []float32, k int) ([]property.Candidate, error)
	searchActiveFn func(ctx context.Context, f property.Filters, limit int, byPrice bool) ([]property.Candidate, error)
}

func (m *mockSearchRepo) SearchKNN(ctx context.Context, vector []float32, k int) ([]property.Candidate, error) {
	return m.searchKNNFn(ctx, vector, k)
}

func (m *mockSearchRepo) SearchActive(ctx context.Context, f property.Filters, limit int, byPrice bool) ([]property.Candidate, error) {
	return m.searchActiveFn(ctx, f, limit, byPrice)
}

type mockQueryEmbedder struct {
	forQueryFn func(ctx context.Context, query string) ([]float32, error)
}

func (m *mockQueryEmbedder) ForQuery(ctx context.Context, query string) ([]float32, error) {
	return m.forQueryFn(ctx, query)
}

type mockSearcher struct {
	searchFn func(ctx context.Context, query string, f property.Filters, limit int) ([]match.Result, error)
}

func (m *mockSearcher) Search(ctx context.Context, query string, f property.Filters, limit int) ([]match.Result, error) {
	return m.searchFn(ctx, query, f, limit)
}

type mockGenerator struct {
	forPropertyFn func(ctx context.Context, rec property.Record) (property.Embedding, error)
}

func (m *mockGenerator) ForProperty(ctx context.Context, rec property.Record) (property.Embedding, error) {
	return m.forPropertyFn(ctx, rec)
}

type mockIngestRepo struct {
	upsertFn func(ctx context.Context, emb *property.Embedding) error
}

func (m *mockIngestRepo) Upsert(ctx context.Context, emb *property.Embedding) error {
	return m.upsertFn(ctx, emb)
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.pingFn(ctx) }

func candidate(id string, distance float64, price float64, remarks string) property.Candidate {
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

func newSearchService(repo *mockSearchRepo, embed *mockQueryEmbedder) *searchuc.Service {
	fallback := searchuc.NewFallback(repo, searchuc.DefaultFallbackScore)
	return searchuc.New(repo, embed, fallback, zap.NewNop())
}

func newTestServer(
	search *searchuc.Service,
	matcher *matcheruc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
) *Server {
	return NewServer(search, matcher, ingest, health, zap.NewNop())
}
