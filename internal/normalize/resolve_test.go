package normalize

import (
	"reflect"
	"testing"

	"github.com/casavec/propmatch/internal/domain/property"
)

func TestResolve_NestedShape(t *testing.T) {
	raw := map[string]any{
		"propertyId": "P-100",
		"address": map[string]any{
			"street":     "12 Queen St",
			"city":       "Toronto",
			"province":   "ON",
			"postalCode": "M5H 2N2",
		},
		"detail": map[string]any{
			"price":        750000.0,
			"bedrooms":     3,
			"bathrooms":    2,
			"propertyType": "House",
			"status":       "Active",
			"remarks":      "Bright corner unit",
			"amenities":    []any{"deck", "garage"},
		},
	}

	rec := Resolve(raw)

	if rec.ID != "P-100" {
		t.Errorf("ID = %q, want P-100", rec.ID)
	}
	if rec.Address.City != "Toronto" || rec.Address.Street != "12 Queen St" {
		t.Errorf("unexpected address: %+v", rec.Address)
	}
	if rec.Price != 750000 {
		t.Errorf("Price = %v, want 750000", rec.Price)
	}
	if rec.Bedrooms != 3 || rec.Bathrooms != 2 {
		t.Errorf("rooms = %d/%d, want 3/2", rec.Bedrooms, rec.Bathrooms)
	}
	if rec.PropertyType != "residential" {
		t.Errorf("PropertyType = %q, want residential", rec.PropertyType)
	}
	if !rec.IsActive() {
		t.Errorf("Status = %q, want active", rec.Status)
	}
	if rec.Remarks != "Bright corner unit" {
		t.Errorf("Remarks = %q", rec.Remarks)
	}
	if !reflect.DeepEqual(rec.Amenities, []string{"deck", "garage"}) {
		t.Errorf("Amenities = %v", rec.Amenities)
	}
	if rec.Payload == nil {
		t.Error("Payload should carry the detail map")
	}
}

func TestResolve_FlatShape(t *testing.T) {
	raw := map[string]any{
		"id":       "P-200",
		"street":   "99 King St",
		"city":     "Hamilton",
		"state":    "ON",
		"zip":      "L8P 1A1",
		"type":     "Condominium",
		"beds":     "2",
		"baths":    1.0,
		"price":    "450000",
		"status":   "ACTIVE",
		"remarks":  "Walk to the lake",
		"details":  map[string]any{"rooms": []any{map[string]any{"type": "den"}}},
		"amenities": []any{"pool"},
	}

	rec := Resolve(raw)

	if rec.ID != "P-200" {
		t.Errorf("ID = %q, want P-200", rec.ID)
	}
	if rec.Address.Street != "99 King St" || rec.Address.Province != "ON" || rec.Address.PostalCode != "L8P 1A1" {
		t.Errorf("unexpected address: %+v", rec.Address)
	}
	if rec.PropertyType != "condo" {
		t.Errorf("PropertyType = %q, want condo", rec.PropertyType)
	}
	if rec.Bedrooms != 2 || rec.Bathrooms != 1 {
		t.Errorf("rooms = %d/%d, want 2/1", rec.Bedrooms, rec.Bathrooms)
	}
	if rec.Price != 450000 {
		t.Errorf("Price = %v, want 450000", rec.Price)
	}
	if rec.Status != "active" {
		t.Errorf("Status = %q, want active", rec.Status)
	}
	if rec.Payload == nil {
		t.Error("Payload should carry the details map")
	}
}

func TestResolve_FlatShape_AddressSubObject(t *testing.T) {
	raw := map[string]any{
		"propertyId": "P-300",
		"address":    map[string]any{"city": "Ottawa"},
		"price":      300000,
	}

	rec := Resolve(raw)
	if rec.Address.City != "Ottawa" {
		t.Errorf("City = %q, want Ottawa", rec.Address.City)
	}
	if rec.Price != 300000 {
		t.Errorf("Price = %v, want 300000", rec.Price)
	}
}

func TestResolve_MalformedFieldsDegradeToAbsent(t *testing.T) {
	raw := map[string]any{
		"propertyId": "N/A",
		"id":         "P-400",
		"price":      "not a number",
		"bedrooms":   []any{"three"},
		"remarks":    "null",
		"amenities":  "deck", // not a list
		"address":    42,
	}

	rec := Resolve(raw)

	if rec.ID != "P-400" {
		t.Errorf("ID = %q, want fallback to second key", rec.ID)
	}
	if rec.Price != 0 {
		t.Errorf("Price = %v, want 0 for unparsable value", rec.Price)
	}
	if rec.Bedrooms != 0 {
		t.Errorf("Bedrooms = %d, want 0", rec.Bedrooms)
	}
	if rec.Remarks != "" {
		t.Errorf("Remarks = %q, want sentinel read as absent", rec.Remarks)
	}
	if rec.Amenities != nil {
		t.Errorf("Amenities = %v, want nil", rec.Amenities)
	}
	if rec.Address != (property.Address{}) {
		t.Errorf("Address = %+v, want zero", rec.Address)
	}
}

func TestResolve_NilAndEmpty(t *testing.T) {
	if rec := Resolve(nil); !reflect.DeepEqual(rec, property.Record{}) {
		t.Errorf("Resolve(nil) = %+v, want zero record", rec)
	}
	if rec := Resolve(map[string]any{}); rec.ID != "" {
		t.Errorf("Resolve(empty) ID = %q, want empty", rec.ID)
	}
}

func TestResolve_EmptyDetailFallsBackToFlat(t *testing.T) {
	// An empty detail map does not select the nested shape.
	raw := map[string]any{
		"propertyId": "P-500",
		"detail":     map[string]any{},
		"price":      100000,
	}

	rec := Resolve(raw)
	if rec.Price != 100000 {
		t.Errorf("Price = %v, want flat resolution", rec.Price)
	}
}

func TestResolve_NestedStatusFromTopLevel(t *testing.T) {
	raw := map[string]any{
		"propertyId": "P-600",
		"status":     "Active",
		"detail":     map[string]any{"price": 1.0},
	}

	rec := Resolve(raw)
	if rec.Status != "active" {
		t.Errorf("Status = %q, want top-level fallback", rec.Status)
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"numeric string", "42.5", 42.5, true},
		{"garbage string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := asFloat(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Errorf("asFloat(%v) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
