package normalize

import (
	"strings"

	"github.com/casavec/propmatch/internal/domain/property"
)

// minedPaths is the explicit allow-list of payload locations the fallback
// engine mines for searchable text. Each path yields zero or more strings;
// a missing or malformed sub-object contributes nothing. Keeping the list
// here makes the "never error on malformed data" behavior auditable.
var minedPaths = [][]string{
	{"amenities", "[]"},
	{"features", "[]"},
	{"rooms", "[]", "type"},
	{"rooms", "[]", "description"},
	{"nearbyPlaces", "[]", "name"},
	{"valuation", "notes"},
	{"photosAnalysis", "[]", "description"},
}

// MinePayload walks the open-ended payload along the allow-listed paths
// and collects every usable string it finds.
func MinePayload(payload map[string]any) []string {
	if payload == nil {
		return nil
	}
	var out []string
	for _, path := range minedPaths {
		out = append(out, walk(payload, path)...)
	}
	return out
}

func walk(node any, path []string) []string {
	if len(path) == 0 {
		if s := asString(node); s != "" {
			return []string{s}
		}
		return nil
	}

	seg, rest := path[0], path[1:]
	if seg == "[]" {
		items, ok := node.([]any)
		if !ok {
			return nil
		}
		var out []string
		for _, item := range items {
			out = append(out, walk(item, rest)...)
		}
		return out
	}

	m, ok := asMap(node)
	if !ok {
		return nil
	}
	return walk(m[seg], rest)
}

// SearchBlob builds the lowercase per-candidate text blob the fallback
// engine and the requirement matcher score against: structured fields plus
// the mined payload text.
func SearchBlob(rec property.Record) string {
	var parts []string
	appendPart(&parts, rec.Address.Street)
	appendPart(&parts, rec.Address.City)
	appendPart(&parts, rec.Address.Province)
	appendPart(&parts, rec.PropertyType)
	appendPart(&parts, rec.Remarks)
	for _, a := range rec.Amenities {
		appendPart(&parts, a)
	}
	parts = append(parts, MinePayload(rec.Payload)...)
	return strings.ToLower(strings.Join(parts, " "))
}
