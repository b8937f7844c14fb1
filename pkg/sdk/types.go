package propmatch

import (
	"github.com/casavec/propmatch/internal/domain/match"
)

// Filters are the hard constraints of a search or match query.
// Zero values mean "not set".
type Filters struct {
	Location     string
	MinPrice     float64
	MaxPrice     float64
	PropertyType string
	Bedrooms     int
	Bathrooms    int
}

// SearchQuery is the input to Client.Search.
type SearchQuery struct {
	Query   string
	Filters Filters
	Limit   int
}

// MatchQuery is the input to Client.Match.
type MatchQuery struct {
	Filters    Filters
	MustHave   []string
	NiceToHave []string
	Limit      int
}

// Property is the snapshot of one listing as it was indexed.
type Property struct {
	ID           string
	Street       string
	City         string
	Province     string
	PostalCode   string
	Price        float64
	Bedrooms     int
	Bathrooms    int
	PropertyType string
	Status       string
	Remarks      string
	Amenities    []string
}

// Result is one scored property. Requirement fields are populated only
// by Client.Match.
type Result struct {
	PropertyID        string
	Similarity        float64
	Property          Property
	MustHaveMatches   []string
	NiceToHaveMatches []string
	CompositeScore    float64
}

// HealthReport aggregates component health checks.
type HealthReport struct {
	Status string
	Checks map[string]string
}

// IngestSummary is the outcome of one ProcessProperties batch.
type IngestSummary struct {
	JobID     string
	Total     int
	Succeeded int
	Failed    int
	Errors    []IngestError
}

// IngestError records why one listing in a batch was skipped.
type IngestError struct {
	Index      int
	PropertyID string
	Reason     string
}

func resultsToPublic(results []match.Result, withRequirements bool) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		rec := r.Record()
		res := Result{
			PropertyID: r.PropertyID(),
			Similarity: r.Similarity(),
			Property: Property{
				ID:           rec.ID,
				Street:       rec.Address.Street,
				City:         rec.Address.City,
				Province:     rec.Address.Province,
				PostalCode:   rec.Address.PostalCode,
				Price:        rec.Price,
				Bedrooms:     rec.Bedrooms,
				Bathrooms:    rec.Bathrooms,
				PropertyType: rec.PropertyType,
				Status:       rec.Status,
				Remarks:      rec.Remarks,
				Amenities:    rec.Amenities,
			},
		}
		if withRequirements {
			res.MustHaveMatches = r.MustHaveMatches()
			res.NiceToHaveMatches = r.NiceToHaveMatches()
			res.CompositeScore = r.CompositeScore()
		}
		out = append(out, res)
	}
	return out
}
