// Package search implements the two search paths: the vector similarity
// engine and the deterministic fallback it escalates to. The search
// surface never hard-fails: the worst case is a heuristic- or
// price-ordered list, or an empty list.
package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain/match"
	"github.com/casavec/propmatch/internal/domain/property"
	"github.com/casavec/propmatch/internal/metrics"
)

// Escalation reasons recorded when the vector path hands off to fallback.
const (
	reasonEmbedFailed   = "embed_failed"
	reasonQueryFailed   = "query_failed"
	reasonNoCandidates  = "no_candidates"
	reasonFilteredEmpty = "filtered_empty"
)

// Service is the similarity search engine.
type Service struct {
	repo     Repository
	embed    QueryEmbedder
	fallback *Fallback
	logger   *zap.Logger

	defaultLimit int
	maxLimit     int
	overfetch    int
}

// New creates a similarity search service.
func New(repo Repository, embed QueryEmbedder, fallback *Fallback, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		embed:        embed,
		fallback:     fallback,
		logger:       logger,
		defaultLimit: 10,
		maxLimit:     50,
		overfetch:    2,
	}
}

// WithPagination configures the default and maximum result limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithOverfetch configures the candidate over-fetch factor. The vector
// query fetches overfetch×limit candidates to leave headroom for the
// local post-filter.
func (s *Service) WithOverfetch(factor int) *Service {
	if factor > 0 {
		s.overfetch = factor
	}
	return s
}

// Search runs the vector path and escalates to fallback when it degrades.
// It returns an error only for invalid input, never for a degraded
// semantic layer.
func (s *Service) Search(
	ctx context.Context, query string, f property.Filters, limit int,
) ([]match.Result, error) {
	limit = s.clampLimit(limit)

	vector, err := s.embed.ForQuery(ctx, query)
	if err != nil {
		s.logger.Warn("Query embedding failed, escalating to fallback", zap.Error(err))
		return s.escalate(ctx, reasonEmbedFailed, query, f, limit), nil
	}
	if len(vector) == 0 {
		return s.escalate(ctx, reasonEmbedFailed, query, f, limit), nil
	}

	candidates, err := s.repo.SearchKNN(ctx, vector, limit*s.overfetch)
	if err != nil {
		s.logger.Warn("Vector query failed, escalating to fallback", zap.Error(err))
		return s.escalate(ctx, reasonQueryFailed, query, f, limit), nil
	}
	if len(candidates) == 0 {
		return s.escalate(ctx, reasonNoCandidates, query, f, limit), nil
	}

	filtered := candidates[:0:0]
	for _, c := range candidates {
		if f.Matches(c.Record) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return s.escalate(ctx, reasonFilteredEmpty, query, f, limit), nil
	}

	sortCandidates(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	results := make([]match.Result, 0, len(filtered))
	for _, c := range filtered {
		results = append(results, match.New(c.ID, c.Distance, c.Record))
	}

	metrics.SearchesTotal.WithLabelValues("semantic").Inc()
	return results, nil
}

// escalate serves the query from the fallback engine. A fallback failure
// degrades to an empty result list, never an error.
func (s *Service) escalate(
	ctx context.Context, reason, query string, f property.Filters, limit int,
) []match.Result {
	metrics.SearchEscalationsTotal.WithLabelValues(reason).Inc()

	results, err := s.fallback.Search(ctx, f, limit, query)
	if err != nil {
		s.logger.Error("Fallback search failed, returning no matches",
			zap.String("reason", reason), zap.Error(err))
		return []match.Result{}
	}

	metrics.SearchesTotal.WithLabelValues("fallback").Inc()
	return results
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// sortCandidates orders by ascending distance with property id ascending
// as the deterministic secondary key.
func sortCandidates(cands []property.Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Distance != cands[j].Distance {
			return cands[i].Distance < cands[j].Distance
		}
		return cands[i].ID < cands[j].ID
	})
}
