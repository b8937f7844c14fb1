package property

import "strings"

// Filters are the hard constraints attached to a search query.
// Zero values mean "not set".
type Filters struct {
	Location     string
	MinPrice     float64
	MaxPrice     float64
	PropertyType string
	Bedrooms     int
	Bathrooms    int
}

// IsEmpty reports whether no constraint is set.
func (f Filters) IsEmpty() bool {
	return f.Location == "" && f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.PropertyType == "" && f.Bedrooms == 0 && f.Bathrooms == 0
}

// Matches applies the filters to a record: minimum bedrooms/bathrooms,
// price bounds, taxonomy-mapped property type, and location substring
// match over city, province, and street.
func (f Filters) Matches(r Record) bool {
	if f.Bedrooms > 0 && r.Bedrooms < f.Bedrooms {
		return false
	}
	if f.Bathrooms > 0 && r.Bathrooms < f.Bathrooms {
		return false
	}
	if f.MinPrice > 0 && r.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && r.Price > f.MaxPrice {
		return false
	}
	if f.PropertyType != "" && CanonicalType(f.PropertyType) != CanonicalType(r.PropertyType) {
		return false
	}
	if f.Location != "" && !matchesLocation(f.Location, r.Address) {
		return false
	}
	return true
}

func matchesLocation(loc string, a Address) bool {
	needle := strings.ToLower(strings.TrimSpace(loc))
	if needle == "" {
		return true
	}
	for _, hay := range []string{a.City, a.Province, a.Street, a.PostalCode} {
		if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// typeTaxonomy maps colloquial property-type terms to canonical values.
var typeTaxonomy = map[string]string{
	"house":         "residential",
	"home":          "residential",
	"detached":      "residential",
	"single family": "residential",
	"bungalow":      "residential",
	"residential":   "residential",
	"condo":         "condo",
	"condominium":   "condo",
	"apartment":     "condo",
	"flat":          "condo",
	"townhouse":     "townhouse",
	"townhome":      "townhouse",
	"row house":     "townhouse",
	"duplex":        "multi-family",
	"triplex":       "multi-family",
	"multi family":  "multi-family",
	"multi-family":  "multi-family",
	"land":          "land",
	"lot":           "land",
	"acreage":       "land",
	"commercial":    "commercial",
	"office":        "commercial",
	"retail":        "commercial",
}

// CanonicalType maps a colloquial property-type term to its canonical
// taxonomy value. Unknown terms pass through lowercased.
func CanonicalType(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := typeTaxonomy[key]; ok {
		return canonical
	}
	return key
}
