package propmatch

import (
	"context"
	"errors"
	"testing"

	dommatch "github.com/casavec/propmatch/internal/domain/match"
	domprop "github.com/casavec/propmatch/internal/domain/property"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background(), WithOpenAI("key", "text-embedding-3-small", 1536))
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_NoEmbeddingProvider(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""))
	if err == nil {
		t.Fatal("expected error when no embedding provider configured")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{dimensions: defaultDimensions}
	opts := []Option{
		WithRedis("redis-1:6379", "pw"),
		WithOpenAI("key", "test-model", 256),
		WithOpenAIBaseURL("http://localhost:9999/v1"),
		WithKeyPrefix("homes:"),
		WithHNSW(16, 200),
		WithLimits(5, 25),
		WithFallbackScore(0.6),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) != 1 || cfg.addrs[0] != "redis-1:6379" || cfg.password != "pw" {
		t.Errorf("redis config = %v/%q", cfg.addrs, cfg.password)
	}
	if cfg.openaiKey != "key" || cfg.model != "test-model" || cfg.dimensions != 256 {
		t.Errorf("openai config = %q/%q/%d", cfg.openaiKey, cfg.model, cfg.dimensions)
	}
	if cfg.openaiBaseURL != "http://localhost:9999/v1" {
		t.Errorf("base url = %q", cfg.openaiBaseURL)
	}
	if cfg.keyPrefix != "homes:" {
		t.Errorf("key prefix = %q", cfg.keyPrefix)
	}
	if cfg.hnswM != 16 || cfg.hnswEFConstruct != 200 {
		t.Errorf("hnsw = %d/%d", cfg.hnswM, cfg.hnswEFConstruct)
	}
	if cfg.defaultLimit != 5 || cfg.maxLimit != 25 {
		t.Errorf("limits = %d/%d", cfg.defaultLimit, cfg.maxLimit)
	}
	if cfg.fallbackScore != 0.6 {
		t.Errorf("fallback score = %g", cfg.fallbackScore)
	}
}

func TestEmbedderAdapter(t *testing.T) {
	called := false
	mock := &mockEmbedder{
		fn: func(_ context.Context, text string) (EmbeddingResult, error) {
			called = true
			if text != "hello" {
				t.Errorf("text = %q, want hello", text)
			}
			return EmbeddingResult{
				Embedding:    []float32{1, 2, 3},
				PromptTokens: 5,
				TotalTokens:  10,
			}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	result, err := adapter.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("inner embedder was not called")
	}
	if len(result.Embedding) != 3 {
		t.Errorf("embedding len = %d, want 3", len(result.Embedding))
	}
	if result.TotalTokens != 10 {
		t.Errorf("total tokens = %d, want 10", result.TotalTokens)
	}
}

func TestEmbedderAdapter_Error(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, errors.New("provider down")
		},
	}

	adapter := &embedderAdapter{inner: mock}
	if _, err := adapter.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from adapter")
	}
}

func TestResultsToPublic(t *testing.T) {
	rec := domprop.Record{
		ID: "p-1",
		Address: domprop.Address{
			Street:   "12 Harbour Rd",
			City:     "Victoria",
			Province: "BC",
		},
		Price:        450000,
		Bedrooms:     3,
		Bathrooms:    2,
		PropertyType: "residential",
		Status:       domprop.StatusActive,
		Amenities:    []string{"deck"},
	}
	internal := dommatch.New("p-1", 0.2, rec).
		WithRequirements([]string{"deck"}, []string{"view"}, 0.7)

	plain := resultsToPublic([]dommatch.Result{internal}, false)
	if len(plain) != 1 {
		t.Fatalf("len = %d, want 1", len(plain))
	}
	if plain[0].PropertyID != "p-1" || plain[0].Similarity != 0.8 {
		t.Errorf("plain result = %+v", plain[0])
	}
	if plain[0].Property.City != "Victoria" || plain[0].Property.Bedrooms != 3 {
		t.Errorf("property snapshot = %+v", plain[0].Property)
	}
	if plain[0].CompositeScore != 0 || plain[0].MustHaveMatches != nil {
		t.Errorf("requirement fields leaked into plain search result: %+v", plain[0])
	}

	scored := resultsToPublic([]dommatch.Result{internal}, true)
	if scored[0].CompositeScore != 0.7 {
		t.Errorf("composite = %g, want 0.7", scored[0].CompositeScore)
	}
	if len(scored[0].MustHaveMatches) != 1 || scored[0].MustHaveMatches[0] != "deck" {
		t.Errorf("must-have matches = %v", scored[0].MustHaveMatches)
	}
}

// --- Mocks ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}
