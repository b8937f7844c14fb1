package db

import "testing"

func TestTagFilter(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		values []string
		want   string
	}{
		{"single value", "status", []string{"active"}, "@status:{active}"},
		{"multiple values form OR group", "property_type", []string{"condo", "townhouse"}, "@property_type:{condo|townhouse}"},
		{"special characters escaped", "city", []string{"st. john's"}, `@city:{st\.\ john\'s}`},
		{"empty values dropped", "status", []string{"", "active"}, "@status:{active}"},
		{"no values", "status", nil, ""},
		{"all values empty", "status", []string{"", ""}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TagFilter(tc.key, tc.values...); got != tc.want {
				t.Errorf("TagFilter = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNumericRange(t *testing.T) {
	lo, hi := 100000.0, 500000.0

	tests := []struct {
		name     string
		gte, lte *float64
		want     string
	}{
		{"both bounds", &lo, &hi, "@price:[100000 500000]"},
		{"only lower", &lo, nil, "@price:[100000 +inf]"},
		{"only upper", nil, &hi, "@price:[-inf 500000]"},
		{"unbounded", nil, nil, "@price:[-inf +inf]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NumericRange("price", tc.gte, tc.lte); got != tc.want {
				t.Errorf("NumericRange = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnd(t *testing.T) {
	tests := []struct {
		name    string
		clauses []string
		want    string
	}{
		{"joins non-empty", []string{"@status:{active}", "@price:[0 100]"}, "@status:{active} @price:[0 100]"},
		{"drops empty clauses", []string{"", "@status:{active}", ""}, "@status:{active}"},
		{"all empty", []string{"", ""}, ""},
		{"no clauses", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := And(tc.clauses...); got != tc.want {
				t.Errorf("And = %q, want %q", got, tc.want)
			}
		})
	}
}
