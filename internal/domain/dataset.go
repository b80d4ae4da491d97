package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Dataset is the in-memory table loaded once at startup. It is never mutated
// after NewDataset returns; callers share it by pointer.
type Dataset struct {
	source    string
	loadedAt  time.Time
	records   []DisasterRecord
	types     []string
	countries []string
}

// NewDataset takes ownership of records and indexes their distinct categories.
func NewDataset(source string, records []DisasterRecord) *Dataset {
	return &Dataset{
		source:    source,
		loadedAt:  clock.Now(),
		records:   records,
		types:     distinct(records, func(r DisasterRecord) string { return r.DisasterType }),
		countries: distinct(records, func(r DisasterRecord) string { return r.Country }),
	}
}

// Records returns the rows in file order. The slice must be treated as read-only.
func (d *Dataset) Records() []DisasterRecord { return d.records }

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) Source() string { return d.source }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// DisasterTypes returns the distinct disaster types in order of first appearance.
func (d *Dataset) DisasterTypes() []string { return append([]string(nil), d.types...) }

// Countries returns the distinct countries in order of first appearance.
func (d *Dataset) Countries() []string { return append([]string(nil), d.countries...) }

// HasDisasterType reports whether any record carries the given type.
func (d *Dataset) HasDisasterType(t string) bool {
	for _, v := range d.types {
		if v == t {
			return true
		}
	}
	return false
}

func distinct(records []DisasterRecord, key func(DisasterRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// RecordID derives a stable identifier from a record's key fields, so the
// same row yields the same ID across reloads and replays.
func RecordID(r DisasterRecord) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		r.DisasterType, r.Country, r.Location, r.StartDate.Format(time.DateOnly), r.Region)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if r.DisasterType == "" {
		return short
	}
	return fmt.Sprintf("%s-%s", slug(r.DisasterType), short)
}

func slug(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b = append(b, c+('a'-'A'))
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b = append(b, c)
		default:
			if len(b) > 0 && b[len(b)-1] != '_' {
				b = append(b, '_')
			}
		}
	}
	if n := len(b); n > 0 && b[n-1] == '_' {
		b = b[:n-1]
	}
	return string(b)
}
