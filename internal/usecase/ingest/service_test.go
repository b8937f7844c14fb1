package ingest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/casavec/propmatch/internal/domain/property"
)

func payloadFor(id string) map[string]any {
	return map[string]any{
		"propertyId": id,
		"price":      250000.0,
		"status":     "active",
	}
}

func TestProcessStoresEveryListing(t *testing.T) {
	var stored []string
	gen := &mockGenerator{
		forPropertyFn: func(_ context.Context, rec property.Record) (property.Embedding, error) {
			return property.Embedding{
				PropertyID: rec.ID,
				Combined:   []float32{1, 2},
				Snapshot:   rec,
			}, nil
		},
	}
	repo := &mockRepository{
		upsertFn: func(_ context.Context, emb *property.Embedding) error {
			stored = append(stored, emb.PropertyID)
			return nil
		},
	}
	svc := New(gen, repo, zap.NewNop())

	summary, err := svc.Process(context.Background(), []map[string]any{
		payloadFor("p-1"), payloadFor("p-2"),
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if summary.JobID == "" {
		t.Error("JobID is empty")
	}
	if summary.Total != 2 || summary.Succeeded != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want total 2 succeeded 2", summary)
	}
	if len(summary.Errors) != 0 {
		t.Errorf("Errors = %+v, want none", summary.Errors)
	}
	if len(stored) != 2 || stored[0] != "p-1" || stored[1] != "p-2" {
		t.Errorf("stored order = %v, want sequential [p-1 p-2]", stored)
	}
}

func TestProcessContinuesPastFailures(t *testing.T) {
	genErr := errors.New("provider rate limit")
	gen := &mockGenerator{
		forPropertyFn: func(_ context.Context, rec property.Record) (property.Embedding, error) {
			if rec.ID == "p-2" {
				return property.Embedding{}, genErr
			}
			return property.Embedding{PropertyID: rec.ID, Combined: []float32{1}, Snapshot: rec}, nil
		},
	}
	repo := &mockRepository{
		upsertFn: func(_ context.Context, emb *property.Embedding) error {
			if emb.PropertyID == "p-3" {
				return errors.New("write refused")
			}
			return nil
		},
	}
	svc := New(gen, repo, zap.NewNop())

	summary, err := svc.Process(context.Background(), []map[string]any{
		payloadFor("p-1"), payloadFor("p-2"), payloadFor("p-3"), payloadFor("p-4"),
	})
	if err != nil {
		t.Fatalf("Process() error = %v, item failures must not abort the batch", err)
	}

	if summary.Succeeded != 2 || summary.Failed != 2 {
		t.Fatalf("summary = %+v, want 2 succeeded 2 failed", summary)
	}
	if len(summary.Errors) != 2 {
		t.Fatalf("Errors = %+v, want two entries", summary.Errors)
	}
	if summary.Errors[0].Index != 1 || summary.Errors[0].PropertyID != "p-2" {
		t.Errorf("Errors[0] = %+v, want index 1 property p-2", summary.Errors[0])
	}
	if summary.Errors[1].Index != 2 || summary.Errors[1].PropertyID != "p-3" {
		t.Errorf("Errors[1] = %+v, want index 2 property p-3", summary.Errors[1])
	}
}

func TestProcessNormalizesFlatPayloads(t *testing.T) {
	var seen property.Record
	gen := &mockGenerator{
		forPropertyFn: func(_ context.Context, rec property.Record) (property.Embedding, error) {
			seen = rec
			return property.Embedding{PropertyID: rec.ID, Combined: []float32{1}, Snapshot: rec}, nil
		},
	}
	repo := &mockRepository{
		upsertFn: func(_ context.Context, _ *property.Embedding) error { return nil },
	}
	svc := New(gen, repo, zap.NewNop())

	_, err := svc.Process(context.Background(), []map[string]any{{
		"id":       "p-9",
		"city":     "Halifax",
		"province": "NS",
		"beds":     "3",
		"status":   "active",
	}})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if seen.ID != "p-9" || seen.Address.City != "Halifax" || seen.Bedrooms != 3 {
		t.Errorf("resolved record = %+v, want normalized flat payload", seen)
	}
}

func TestProcessAbortsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(&mockGenerator{}, &mockRepository{}, zap.NewNop())
	summary, err := svc.Process(ctx, []map[string]any{payloadFor("p-1")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Process() error = %v, want context.Canceled", err)
	}
	if summary.Succeeded != 0 {
		t.Errorf("summary = %+v, want nothing processed", summary)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	svc := New(&mockGenerator{}, &mockRepository{}, zap.NewNop())
	summary, err := svc.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Total != 0 || summary.JobID == "" {
		t.Errorf("summary = %+v, want empty batch with a job id", summary)
	}
}

// --- Mocks ---

type mockGenerator struct {
	forPropertyFn func(ctx context.Context, rec property.Record) (property.Embedding, error)
}

func (m *mockGenerator) ForProperty(ctx context.Context, rec property.Record) (property.Embedding, error) {
	return m.forPropertyFn(ctx, rec)
}

type mockRepository struct {
	upsertFn func(ctx context.Context, emb *property.Embedding) error
}

func (m *mockRepository) Upsert(ctx context.Context, emb *property.Embedding) error {
	return m.upsertFn(ctx, emb)
}
