package propmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/db"
	dbRedis "github.com/casavec/propmatch/internal/db/redis"
	"github.com/casavec/propmatch/internal/domain"
	domprop "github.com/casavec/propmatch/internal/domain/property"
	proprepo "github.com/casavec/propmatch/internal/repository/property"
	openaiEmb "github.com/casavec/propmatch/internal/transport/openai"
	embeddinguc "github.com/casavec/propmatch/internal/usecase/embedding"
	healthuc "github.com/casavec/propmatch/internal/usecase/health"
	ingestuc "github.com/casavec/propmatch/internal/usecase/ingest"
	matcheruc "github.com/casavec/propmatch/internal/usecase/matcher"
	searchuc "github.com/casavec/propmatch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultDimensions       = 1536
)

// Client is the propmatch SDK entry point. All engine services run
// in-process against the configured Redis instance.
type Client struct {
	store   db.Store
	search  *searchuc.Service
	matcher *matcheruc.Service
	ingest  *ingestuc.Service
	health  *healthuc.Service
}

// New creates a Client and connects to Redis. The provided context is
// used for the readiness check and initial index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{dimensions: defaultDimensions}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("propmatch: redis address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.openaiKey == "" {
		return nil, errors.New("propmatch: embedding provider required (use WithEmbedder or WithOpenAI)")
	}

	if cfg.keyPrefix != "" {
		domain.KeyPrefix = cfg.keyPrefix
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("propmatch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("propmatch: redis not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, logger *zap.Logger) (*Client, error) {
	var domEmb domain.Embedder
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	} else {
		domEmb = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openaiKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
		})
	}

	gen := embeddinguc.NewGenerator(domEmb)

	repo := proprepo.New(store, cfg.dimensions)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		repo = repo.WithHNSW(proprepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}
	if err := repo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("propmatch: ensure index: %w", err)
	}

	fallback := searchuc.NewFallback(repo, cfg.fallbackScore)
	searchSvc := searchuc.New(repo, gen, fallback, logger).
		WithPagination(cfg.defaultLimit, cfg.maxLimit)

	var checker healthuc.EmbeddingChecker
	if hc, ok := domEmb.(healthuc.EmbeddingChecker); ok {
		checker = hc
	}

	return &Client{
		store:   store,
		search:  searchSvc,
		matcher: matcheruc.New(searchSvc, logger),
		ingest:  ingestuc.New(gen, repo, logger),
		health:  healthuc.New(store, checker),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health runs all component health checks.
func (c *Client) Health(ctx context.Context) HealthReport {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthReport{Status: string(report.Status), Checks: checks}
}

// ProcessProperties generates and stores embeddings for a batch of raw
// listing payloads. Failed items are reported, not fatal.
func (c *Client) ProcessProperties(ctx context.Context, listings []map[string]any) (IngestSummary, error) {
	summary, err := c.ingest.Process(ctx, listings)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("process properties: %w", err)
	}

	out := IngestSummary{
		JobID:     summary.JobID,
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
	}
	for _, e := range summary.Errors {
		out.Errors = append(out.Errors, IngestError{
			Index:      e.Index,
			PropertyID: e.PropertyID,
			Reason:     e.Reason,
		})
	}
	return out, nil
}

// Search runs a semantic search with automatic fallback.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Result, error) {
	results, err := c.search.Search(ctx, q.Query, q.Filters.toDomain(), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resultsToPublic(results, false), nil
}

// Match searches and scores results against explicit requirement lists.
func (c *Client) Match(ctx context.Context, q MatchQuery) ([]Result, error) {
	results, err := c.matcher.ByRequirements(ctx, q.Filters.toDomain(), q.MustHave, q.NiceToHave, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return resultsToPublic(results, true), nil
}

func (f Filters) toDomain() domprop.Filters {
	return domprop.Filters{
		Location:     f.Location,
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		PropertyType: f.PropertyType,
		Bedrooms:     f.Bedrooms,
		Bathrooms:    f.Bathrooms,
	}
}

// embedderAdapter wraps the public Embedder to satisfy domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
