package property

import (
	"fmt"
	"time"

	"github.com/casavec/propmatch/internal/domain"
)

// Embedding is the per-property vector set persisted by the store.
// Each vector is either full-length or entirely absent, never partial.
type Embedding struct {
	PropertyID  string
	Description []float32
	Features    []float32
	Combined    []float32
	Snapshot    Record
	UpdatedAt   time.Time
}

// Validate checks the full-or-absent vector invariant against the index
// dimension. Combined must always be present: the placeholder substitution
// rule upstream guarantees a non-empty combined text for every property.
func (e *Embedding) Validate(dim int) error {
	if e.PropertyID == "" {
		return fmt.Errorf("%w: missing property id", domain.ErrInvalidRequest)
	}
	if len(e.Combined) != dim {
		return domain.ErrVectorDimMismatch
	}
	if len(e.Description) != 0 && len(e.Description) != dim {
		return domain.ErrVectorDimMismatch
	}
	if len(e.Features) != 0 && len(e.Features) != dim {
		return domain.ErrVectorDimMismatch
	}
	return nil
}

// Candidate is a property returned by either search path before scoring.
type Candidate struct {
	ID       string
	Distance float64
	Record   Record
}
