// Package property implements the embedding store: per-property vectors,
// a JSON snapshot of the source record, and the two query shapes the
// search engines need (KNN by vector, pure structured filter).
package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casavec/propmatch/internal/db"
	"github.com/casavec/propmatch/internal/domain"
	domprop "github.com/casavec/propmatch/internal/domain/property"
)

// store is the consumer interface for the embedding store (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error)
}

// HNSWConfig holds HNSW index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo persists property embeddings and serves both search paths.
type Repo struct {
	store store
	dim   int
	hnsw  HNSWConfig
}

// New creates an embedding store repository for vectors of the given dimension.
func New(s store, dim int) *Repo {
	return &Repo{store: s, dim: dim}
}

// WithHNSW configures HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	name := indexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("probe index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(name).
		Prefix(keyPrefix()).
		Tag(fieldStatus).
		Tag(fieldType).
		Tag(fieldCity).
		Tag(fieldProvince).
		Text(fieldAddress).
		Numeric(fieldPrice).
		Numeric(fieldBedrooms).
		Numeric(fieldBathrooms).
		VectorHNSW(fieldVector, r.dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Upsert writes a property embedding. Idempotent, last-write-wins; the
// write is timestamped here so retries of the same tuple stay convergent.
func (r *Repo) Upsert(ctx context.Context, emb *domprop.Embedding) error {
	if err := emb.Validate(r.dim); err != nil {
		return err
	}

	snapshot, err := json.Marshal(emb.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", emb.PropertyID, err)
	}

	emb.UpdatedAt = time.Now().UTC()
	fields := buildHashFields(emb, snapshot)

	key := propertyKey(emb.PropertyID)
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns the stored snapshot and write time for a property.
func (r *Repo) Get(ctx context.Context, propertyID string) (domprop.Embedding, error) {
	key := propertyKey(propertyID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return domprop.Embedding{}, fmt.Errorf("exists %s: %w", key, err)
	}
	if !exists {
		return domprop.Embedding{}, domain.ErrPropertyNotFound
	}

	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domprop.Embedding{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return parseHashFields(propertyID, m), nil
}

// SearchKNN returns up to k nearest active properties by combined-vector
// cosine distance.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, k int) ([]domprop.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    indexName(),
		Prefilter:    db.TagFilter(fieldStatus, domprop.StatusActive),
		Vector:       vector,
		K:            k,
		ReturnFields: candidateReturnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrQueryExecution, err)
	}
	return parseCandidates(sr), nil
}

// SearchActive returns up to limit active properties matching the
// structured filter predicate, optionally ordered ascending by price.
// Location filtering is substring-based and therefore applied by the
// caller, not here.
func (r *Repo) SearchActive(
	ctx context.Context, f domprop.Filters, limit int, byPrice bool,
) ([]domprop.Candidate, error) {
	q := &db.FilterQuery{
		IndexName:    indexName(),
		Query:        buildStructuredQuery(f),
		Limit:        limit,
		ReturnFields: candidateReturnFields,
	}
	if byPrice {
		q.SortBy = fieldPrice
		q.SortAsc = true
	}

	sr, err := r.store.SearchFilter(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search filter: %w: %w", domain.ErrQueryExecution, err)
	}
	return parseCandidates(sr), nil
}

// buildStructuredQuery translates property filters into an FT predicate:
// active status, price bounds, bedroom/bathroom minimums, and the
// taxonomy-mapped property type.
func buildStructuredQuery(f domprop.Filters) string {
	clauses := []string{db.TagFilter(fieldStatus, domprop.StatusActive)}

	if f.MinPrice > 0 || f.MaxPrice > 0 {
		var gte, lte *float64
		if f.MinPrice > 0 {
			gte = &f.MinPrice
		}
		if f.MaxPrice > 0 {
			lte = &f.MaxPrice
		}
		clauses = append(clauses, db.NumericRange(fieldPrice, gte, lte))
	}
	if f.Bedrooms > 0 {
		beds := float64(f.Bedrooms)
		clauses = append(clauses, db.NumericRange(fieldBedrooms, &beds, nil))
	}
	if f.Bathrooms > 0 {
		baths := float64(f.Bathrooms)
		clauses = append(clauses, db.NumericRange(fieldBathrooms, &baths, nil))
	}
	if f.PropertyType != "" {
		clauses = append(clauses, db.TagFilter(fieldType, domprop.CanonicalType(f.PropertyType)))
	}

	return db.And(clauses...)
}

func keyPrefix() string {
	return domain.KeyPrefix + "properties:"
}

func propertyKey(id string) string {
	return keyPrefix() + id
}

func indexName() string {
	return domain.KeyPrefix + "properties:idx"
}
