// Package property holds the canonical property record and the search
// inputs/outputs built on top of it. Records are externally owned: this
// engine only reads them, snapshots them, and scores them.
package property

// Record is the canonical property record after shape resolution.
// Incoming records arrive in one of two schema families (nested detail/address
// sub-objects or flat top-level attributes); the normalize package resolves
// both into this one shape before any extraction runs.
type Record struct {
	ID           string   `json:"propertyId"`
	Address      Address  `json:"address"`
	Price        float64  `json:"price,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Status       string   `json:"status,omitempty"`
	Remarks      string   `json:"remarks,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`

	// Payload carries the open-ended nested details (rooms, nearby places,
	// valuation, imagery notes). Mined best-effort by the fallback walker,
	// never validated.
	Payload map[string]any `json:"details,omitempty"`
}

// Address is the structured location of a property.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// StatusActive is the only status visible to search.
const StatusActive = "active"

// IsActive reports whether the record is visible to search.
func (r Record) IsActive() bool { return r.Status == StatusActive }
