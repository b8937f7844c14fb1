package normalize

import (
	"strconv"
	"strings"

	"github.com/casavec/propmatch/internal/domain/property"
)

// Texts are the canonical strings derived from one property record.
type Texts struct {
	Description string
	Features    string
	Combined    string
}

// BuildTexts produces the three canonical text fields for a record.
// Description and Features may legitimately be empty; Combined is handled
// by the placeholder rule at embedding time.
func BuildTexts(rec property.Record) Texts {
	return Texts{
		Description: rec.Remarks,
		Features:    featuresText(rec),
		Combined:    combinedText(rec),
	}
}

// featuresText concatenates the structural attributes and amenities.
func featuresText(rec property.Record) string {
	var parts []string
	appendPart(&parts, rec.PropertyType)
	appendPart(&parts, countPhrase(rec.Bedrooms, "bedroom"))
	appendPart(&parts, countPhrase(rec.Bathrooms, "bathroom"))
	for _, a := range rec.Amenities {
		appendPart(&parts, a)
	}
	return strings.Join(parts, ", ")
}

// combinedText concatenates location, structural attributes, amenities,
// and remarks into the primary similarity-search key.
func combinedText(rec property.Record) string {
	var parts []string
	appendPart(&parts, rec.Address.Street)
	appendPart(&parts, rec.Address.City)
	appendPart(&parts, rec.Address.Province)
	appendPart(&parts, rec.PropertyType)
	appendPart(&parts, countPhrase(rec.Bedrooms, "bedroom"))
	appendPart(&parts, countPhrase(rec.Bathrooms, "bathroom"))
	for _, a := range rec.Amenities {
		appendPart(&parts, a)
	}
	appendPart(&parts, rec.Remarks)
	return strings.Join(parts, ". ")
}

func appendPart(parts *[]string, s string) {
	if s = strings.TrimSpace(s); s != "" {
		*parts = append(*parts, s)
	}
}

func countPhrase(n int, noun string) string {
	if n <= 0 {
		return ""
	}
	s := strconv.Itoa(n) + " " + noun
	if n > 1 {
		s += "s"
	}
	return s
}
