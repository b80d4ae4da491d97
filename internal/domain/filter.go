package domain

import "time"

// Criteria selects records. Zero-valued fields do not constrain the result.
// From and To are inclusive calendar dates.
type Criteria struct {
	Type    string
	Country string
	From    time.Time
	To      time.Time
}

func (c Criteria) matches(r DisasterRecord) bool {
	if c.Type != "" && r.DisasterType != c.Type {
		return false
	}
	if c.Country != "" && r.Country != c.Country {
		return false
	}
	if !c.From.IsZero() && r.StartDate.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && r.StartDate.After(endOfDay(c.To)) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Select returns the records matching every set criterion, in input order.
// The result is never nil; no matches yields an empty slice.
func Select(records []DisasterRecord, c Criteria) []DisasterRecord {
	out := make([]DisasterRecord, 0)
	for _, r := range records {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByType returns the records whose disaster type equals t, in file
// order. Unlike Select, an empty t matches only records with an empty type.
func FilterByType(records []DisasterRecord, t string) []DisasterRecord {
	out := make([]DisasterRecord, 0)
	for _, r := range records {
		if r.DisasterType == t {
			out = append(out, r)
		}
	}
	return out
}
