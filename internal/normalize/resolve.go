// Package normalize converts heterogeneous property records into canonical
// text fields. Two schema families are recognized: a nested shape carrying
// detail/address sub-objects, and a flat shape with attributes at the top
// level. Shape is detected structurally, never by a version tag, and every
// missing or malformed field degrades to omission rather than failure.
package normalize

import (
	"strconv"
	"strings"

	"github.com/casavec/propmatch/internal/domain/property"
)

// Resolve adapts a raw record of either schema family into the canonical
// property.Record. It never fails: unusable fields are simply absent from
// the output.
func Resolve(raw map[string]any) property.Record {
	if raw == nil {
		return property.Record{}
	}
	if detail, ok := asMap(raw["detail"]); ok {
		return resolveNested(raw, detail)
	}
	return resolveFlat(raw)
}

func resolveNested(raw, detail map[string]any) property.Record {
	rec := property.Record{
		ID:           firstString(raw, "propertyId", "id"),
		Address:      resolveAddress(raw["address"]),
		Price:        firstFloat(detail, "price", "listPrice"),
		Bedrooms:     firstInt(detail, "bedrooms", "beds"),
		Bathrooms:    firstInt(detail, "bathrooms", "baths"),
		PropertyType: property.CanonicalType(firstString(detail, "propertyType", "type")),
		Status:       strings.ToLower(firstString(detail, "status")),
		Remarks:      firstString(detail, "remarks", "description"),
		Amenities:    asStringSlice(detail["amenities"]),
		Payload:      detail,
	}
	if rec.Status == "" {
		rec.Status = strings.ToLower(firstString(raw, "status"))
	}
	return rec
}

func resolveFlat(raw map[string]any) property.Record {
	rec := property.Record{
		ID:           firstString(raw, "propertyId", "id"),
		Price:        firstFloat(raw, "price", "listPrice"),
		Bedrooms:     firstInt(raw, "bedrooms", "beds"),
		Bathrooms:    firstInt(raw, "bathrooms", "baths"),
		PropertyType: property.CanonicalType(firstString(raw, "propertyType", "type")),
		Status:       strings.ToLower(firstString(raw, "status")),
		Remarks:      firstString(raw, "remarks", "description"),
		Amenities:    asStringSlice(raw["amenities"]),
	}
	if addr, ok := asMap(raw["address"]); ok {
		rec.Address = resolveAddress(addr)
	} else {
		rec.Address = property.Address{
			Street:     firstString(raw, "street", "streetAddress"),
			City:       firstString(raw, "city"),
			Province:   firstString(raw, "province", "state"),
			PostalCode: firstString(raw, "postalCode", "zip"),
		}
	}
	if details, ok := asMap(raw["details"]); ok {
		rec.Payload = details
	}
	return rec
}

func resolveAddress(v any) property.Address {
	m, ok := asMap(v)
	if !ok {
		return property.Address{}
	}
	return property.Address{
		Street:     firstString(m, "street", "streetAddress"),
		City:       firstString(m, "city"),
		Province:   firstString(m, "province", "state"),
		PostalCode: firstString(m, "postalCode", "zip"),
	}
}

// --- Coercion helpers ---

// asString extracts a usable string. Sentinels ("", "N/A", null) read as absent.
func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "n/a", "null":
		return ""
	}
	return s
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(asString(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func firstFloat(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := asFloat(m[k]); ok {
			return f
		}
	}
	return 0
}

func firstInt(m map[string]any, keys ...string) int {
	for _, k := range keys {
		if f, ok := asFloat(m[k]); ok {
			return int(f)
		}
	}
	return 0
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	return m, true
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
