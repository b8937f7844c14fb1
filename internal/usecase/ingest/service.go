package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain/property"
	"github.com/casavec/propmatch/internal/normalize"
)

// Generator produces the vector set for one normalized listing.
type Generator interface {
	ForProperty(ctx context.Context, rec property.Record) (property.Embedding, error)
}

// Repository persists one listing embedding record.
type Repository interface {
	Upsert(ctx context.Context, emb *property.Embedding) error
}

// ItemError records why one listing in a batch was skipped.
type ItemError struct {
	Index      int    `json:"index"`
	PropertyID string `json:"property_id,omitempty"`
	Reason     string `json:"reason"`
}

// Summary is the outcome of one batch run. Failed items never abort the
// batch; they are counted and reported.
type Summary struct {
	JobID     string      `json:"job_id"`
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors,omitempty"`
}

// Service runs batch embedding generation over raw listing payloads.
type Service struct {
	gen    Generator
	repo   Repository
	logger *zap.Logger
}

func New(gen Generator, repo Repository, logger *zap.Logger) *Service {
	return &Service{gen: gen, repo: repo, logger: logger}
}

// Process normalizes, embeds, and stores every payload in order. Items
// are handled sequentially so a batch never amplifies provider load.
func (s *Service) Process(ctx context.Context, payloads []map[string]any) (Summary, error) {
	summary := Summary{
		JobID: uuid.NewString(),
		Total: len(payloads),
	}

	log := s.logger.With(zap.String("job_id", summary.JobID))
	log.Info("Starting embedding batch", zap.Int("total", summary.Total))

	for i, raw := range payloads {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch aborted at item %d: %w", i, err)
		}

		rec := normalize.Resolve(raw)
		if err := s.processOne(ctx, rec); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, ItemError{
				Index:      i,
				PropertyID: rec.ID,
				Reason:     err.Error(),
			})
			log.Warn("Skipping listing",
				zap.Int("index", i),
				zap.String("property_id", rec.ID),
				zap.Error(err))
			continue
		}

		summary.Succeeded++
		log.Debug("Listing embedded",
			zap.Int("index", i),
			zap.String("property_id", rec.ID))
	}

	log.Info("Embedding batch finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (s *Service) processOne(ctx context.Context, rec property.Record) error {
	emb, err := s.gen.ForProperty(ctx, rec)
	if err != nil {
		return fmt.Errorf("generate vectors: %w", err)
	}
	if err := s.repo.Upsert(ctx, &emb); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}
