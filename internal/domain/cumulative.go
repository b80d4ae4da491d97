package domain

import (
	"sort"
	"time"
)

// CumulativeRecord is a record annotated with its region's running death total.
type CumulativeRecord struct {
	DisasterRecord
	CumulativeDeaths int `json:"cumulative_deaths"`
}

// CumulativeDeathsByRegion orders records by start date (stable, so ties keep
// file order) and computes, per region, the running sum of total deaths.
// Absent death counts add nothing; such rows carry the total so far.
func CumulativeDeathsByRegion(records []DisasterRecord) []CumulativeRecord {
	sorted := make([]DisasterRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	totals := make(map[string]int)
	out := make([]CumulativeRecord, len(sorted))
	for i, r := range sorted {
		totals[r.Region] += r.Deaths()
		out[i] = CumulativeRecord{DisasterRecord: r, CumulativeDeaths: totals[r.Region]}
	}
	return out
}

// SeriesPoint is one (date, value) sample of a named series.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a named, date-ordered sequence of points.
type Series struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// CumulativeSeries splits annotated rows into one series per region, regions
// in order of first appearance in the date-ordered rows.
func CumulativeSeries(rows []CumulativeRecord) []Series {
	index := make(map[string]int)
	var out []Series
	for _, r := range rows {
		i, ok := index[r.Region]
		if !ok {
			i = len(out)
			index[r.Region] = i
			out = append(out, Series{Name: r.Region})
		}
		out[i].Points = append(out[i].Points, SeriesPoint{Date: r.StartDate, Value: float64(r.CumulativeDeaths)})
	}
	return out
}
