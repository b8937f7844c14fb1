package property

import (
	"errors"
	"testing"

	"github.com/casavec/propmatch/internal/domain"
)

func vec(n int) []float32 { return make([]float32, n) }

func TestEmbedding_Validate(t *testing.T) {
	const dim = 8

	tests := []struct {
		name    string
		emb     Embedding
		wantErr error
	}{
		{
			"full vector set",
			Embedding{PropertyID: "P-1", Description: vec(dim), Features: vec(dim), Combined: vec(dim)},
			nil,
		},
		{
			"combined only",
			Embedding{PropertyID: "P-1", Combined: vec(dim)},
			nil,
		},
		{
			"missing property id",
			Embedding{Combined: vec(dim)},
			domain.ErrInvalidRequest,
		},
		{
			"missing combined",
			Embedding{PropertyID: "P-1"},
			domain.ErrVectorDimMismatch,
		},
		{
			"combined wrong size",
			Embedding{PropertyID: "P-1", Combined: vec(dim - 1)},
			domain.ErrVectorDimMismatch,
		},
		{
			"partial description vector",
			Embedding{PropertyID: "P-1", Combined: vec(dim), Description: vec(3)},
			domain.ErrVectorDimMismatch,
		},
		{
			"partial features vector",
			Embedding{PropertyID: "P-1", Combined: vec(dim), Features: vec(dim + 1)},
			domain.ErrVectorDimMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.emb.Validate(dim)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
