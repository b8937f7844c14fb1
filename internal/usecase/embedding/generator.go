// Package embedding turns canonical property text into the per-property
// vector set and query text into a single query vector.
package embedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casavec/propmatch/internal/domain"
	"github.com/casavec/propmatch/internal/domain/property"
	"github.com/casavec/propmatch/internal/normalize"
)

// CombinedPlaceholder is substituted for an empty combined text before
// embedding, guaranteeing every property a non-null combined vector.
// Description and features legitimately embed to nothing for empty input.
const CombinedPlaceholder = "property listing"

// Generator computes embeddings for property records and search queries.
type Generator struct {
	embed domain.Embedder
}

// NewGenerator creates an embedding generator.
func NewGenerator(embed domain.Embedder) *Generator {
	return &Generator{embed: embed}
}

// ForProperty computes the description, features, and combined vectors for
// one record. The three provider calls run concurrently; any failure fails
// the property (no partial vector set is ever produced).
func (g *Generator) ForProperty(ctx context.Context, rec property.Record) (property.Embedding, error) {
	texts := normalize.BuildTexts(rec)

	combined := strings.TrimSpace(texts.Combined)
	if combined == "" {
		combined = CombinedPlaceholder
	}

	var (
		wg      sync.WaitGroup
		vectors [3][]float32
		errs    [3]error
	)

	inputs := [3]string{strings.TrimSpace(texts.Description), strings.TrimSpace(texts.Features), combined}
	for i, text := range inputs {
		if text == "" {
			continue // empty description/features stay absent, no provider call
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			res, err := g.embed.Embed(ctx, text)
			if err != nil {
				errs[i] = err
				return
			}
			vectors[i] = res.Embedding
		}(i, text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return property.Embedding{}, fmt.Errorf("embed property %s: %w", rec.ID, err)
		}
	}

	return property.Embedding{
		PropertyID:  rec.ID,
		Description: vectors[0],
		Features:    vectors[1],
		Combined:    vectors[2],
		Snapshot:    rec,
	}, nil
}

// ForQuery embeds free query text. Empty text returns an empty vector
// without a provider call; the caller treats that as a degenerate query.
func (g *Generator) ForQuery(ctx context.Context, query string) ([]float32, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	res, err := g.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return res.Embedding, nil
}
