package matcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain"
	"github.com/casavec/propmatch/internal/domain/match"
	"github.com/casavec/propmatch/internal/domain/property"
	"github.com/casavec/propmatch/internal/normalize"
)

const (
	mustHaveWeight   = 0.7
	niceToHaveWeight = 0.3
)

// Searcher is the semantic search surface the matcher builds on.
type Searcher interface {
	Search(ctx context.Context, query string, f property.Filters, limit int) ([]match.Result, error)
}

// Service scores search results against explicit buyer requirements.
type Service struct {
	search Searcher
	logger *zap.Logger
}

func New(search Searcher, logger *zap.Logger) *Service {
	return &Service{search: search, logger: logger}
}

// ByRequirements searches with the requirement phrases joined as the query
// text, then annotates every result with which requirements its listing
// text satisfies and a weighted composite score. Results come back ordered
// by composite descending; ties keep the similarity order of the search.
func (s *Service) ByRequirements(
	ctx context.Context,
	f property.Filters,
	mustHave, niceToHave []string,
	limit int,
) ([]match.Result, error) {
	query := strings.TrimSpace(strings.Join(append(append([]string{}, mustHave...), niceToHave...), " "))

	results, err := s.search.Search(ctx, query, f, limit)
	if err != nil {
		return nil, fmt.Errorf("requirement match: %w: %w", domain.ErrQueryExecution, err)
	}

	scored := make([]match.Result, 0, len(results))
	for _, r := range results {
		blob := listingBlob(r.Record())
		mustMatched := matchedRequirements(blob, mustHave)
		niceMatched := matchedRequirements(blob, niceToHave)

		composite := mustHaveWeight*ratio(len(mustMatched), len(mustHave)) +
			niceToHaveWeight*ratio(len(niceMatched), len(niceToHave))

		scored = append(scored, r.WithRequirements(mustMatched, niceMatched, composite))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompositeScore() > scored[j].CompositeScore()
	})

	s.logger.Debug("Requirement matching completed",
		zap.Int("results", len(scored)),
		zap.Int("must_have", len(mustHave)),
		zap.Int("nice_to_have", len(niceToHave)))
	return scored, nil
}

// listingBlob is the lowercase searchable text of one listing: the remarks
// plus the generated features sentence, which already folds in property
// type, room counts, and amenities.
func listingBlob(rec property.Record) string {
	texts := normalize.BuildTexts(rec)
	return strings.ToLower(texts.Description + " " + texts.Features)
}

func matchedRequirements(blob string, reqs []string) []string {
	matched := make([]string, 0, len(reqs))
	for _, req := range reqs {
		needle := strings.ToLower(strings.TrimSpace(req))
		if needle != "" && strings.Contains(blob, needle) {
			matched = append(matched, req)
		}
	}
	return matched
}

// ratio is matched over total, 0 for an empty requirement list.
func ratio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
