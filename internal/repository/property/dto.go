package property

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/casavec/propmatch/internal/db"
	domprop "github.com/casavec/propmatch/internal/domain/property"
)

// Hash field names. Double-underscore fields are engine internals; the
// rest are indexed filter columns derived from the snapshot.
const (
	fieldVector     = "__vector" // combined embedding, the KNN key
	fieldDescVector = "__desc_vector"
	fieldFeatVector = "__feat_vector"
	fieldSnapshot   = "__snapshot"
	fieldUpdatedAt  = "__updated_at"

	fieldStatus    = "status"
	fieldType      = "property_type"
	fieldCity      = "city"
	fieldProvince  = "province"
	fieldAddress   = "address"
	fieldPrice     = "price"
	fieldBedrooms  = "bedrooms"
	fieldBathrooms = "bathrooms"
)

var candidateReturnFields = []string{fieldSnapshot, "__vector_score"}

// buildHashFields flattens an embedding into hash fields. Absent vectors
// write no field at all, preserving the full-or-absent invariant in storage.
func buildHashFields(emb *domprop.Embedding, snapshot []byte) map[string]string {
	rec := emb.Snapshot

	m := map[string]string{
		fieldVector:    vectorToBytes(emb.Combined),
		fieldSnapshot:  string(snapshot),
		fieldUpdatedAt: emb.UpdatedAt.Format(time.RFC3339),
		fieldStatus:    rec.Status,
		fieldType:      rec.PropertyType,
		fieldPrice:     strconv.FormatFloat(rec.Price, 'f', -1, 64),
		fieldBedrooms:  strconv.Itoa(rec.Bedrooms),
		fieldBathrooms: strconv.Itoa(rec.Bathrooms),
	}
	if len(emb.Description) > 0 {
		m[fieldDescVector] = vectorToBytes(emb.Description)
	}
	if len(emb.Features) > 0 {
		m[fieldFeatVector] = vectorToBytes(emb.Features)
	}
	if rec.Address.City != "" {
		m[fieldCity] = strings.ToLower(rec.Address.City)
	}
	if rec.Address.Province != "" {
		m[fieldProvince] = strings.ToLower(rec.Address.Province)
	}
	if rec.Address.Street != "" {
		m[fieldAddress] = rec.Address.Street
	}
	return m
}

// parseHashFields reconstructs an embedding from stored hash fields.
func parseHashFields(id string, m map[string]string) domprop.Embedding {
	emb := domprop.Embedding{
		PropertyID:  id,
		Combined:    bytesToVector(m[fieldVector]),
		Description: bytesToVector(m[fieldDescVector]),
		Features:    bytesToVector(m[fieldFeatVector]),
	}
	if ts, err := time.Parse(time.RFC3339, m[fieldUpdatedAt]); err == nil {
		emb.UpdatedAt = ts
	}
	emb.Snapshot = parseSnapshot(id, m)
	return emb
}

// parseCandidates converts search entries into candidates. Entry scores
// arrive as similarity; candidates carry distance.
func parseCandidates(sr *db.SearchResult) []domprop.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := keyPrefix()
	out := make([]domprop.Candidate, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		out = append(out, domprop.Candidate{
			ID:       id,
			Distance: max(0, 1-entry.Score),
			Record:   parseSnapshot(id, entry.Fields),
		})
	}
	return out
}

// parseSnapshot unmarshals the stored record snapshot. A missing or
// malformed snapshot degrades to a record rebuilt from the flat indexed
// fields rather than failing the candidate.
func parseSnapshot(id string, fields map[string]string) domprop.Record {
	if raw := fields[fieldSnapshot]; raw != "" {
		var rec domprop.Record
		if err := json.Unmarshal([]byte(raw), &rec); err == nil {
			if rec.ID == "" {
				rec.ID = id
			}
			return rec
		}
	}

	rec := domprop.Record{
		ID:           id,
		Status:       fields[fieldStatus],
		PropertyType: fields[fieldType],
		Address: domprop.Address{
			City:     fields[fieldCity],
			Province: fields[fieldProvince],
			Street:   fields[fieldAddress],
		},
	}
	if f, err := strconv.ParseFloat(fields[fieldPrice], 64); err == nil {
		rec.Price = f
	}
	if n, err := strconv.Atoi(fields[fieldBedrooms]); err == nil {
		rec.Bedrooms = n
	}
	if n, err := strconv.Atoi(fields[fieldBathrooms]); err == nil {
		rec.Bathrooms = n
	}
	return rec
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
