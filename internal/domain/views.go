package domain

import "sort"

// DefaultPreviewRows is the row count of the data preview table.
const DefaultPreviewRows = 5

// Preview returns at most n leading records.
func Preview(records []DisasterRecord, n int) []DisasterRecord {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]DisasterRecord, n)
	copy(out, records[:n])
	return out
}

// DamageOverTime returns one date-ordered series of adjusted total damage per
// disaster subgroup. Rows without an adjusted damage value or a subgroup are skipped.
func DamageOverTime(records []DisasterRecord) []Series {
	sorted := make([]DisasterRecord, 0, len(records))
	for _, r := range records {
		if r.TotalDamageAdjusted != nil && r.DisasterSubgroup != "" {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	index := make(map[string]int)
	var out []Series
	for _, r := range sorted {
		i, ok := index[r.DisasterSubgroup]
		if !ok {
			i = len(out)
			index[r.DisasterSubgroup] = i
			out = append(out, Series{Name: r.DisasterSubgroup})
		}
		out[i].Points = append(out[i].Points, SeriesPoint{Date: r.StartDate, Value: *r.TotalDamageAdjusted})
	}
	return out
}

// TypeCountryDeaths is the death total for one disaster type split by country.
type TypeCountryDeaths struct {
	DisasterType string         `json:"disaster_type"`
	Total        int            `json:"total"`
	ByCountry    map[string]int `json:"by_country"`
}

// DeathsByTypeAndCountry sums total deaths per disaster type and country.
// Types appear in order of first appearance.
func DeathsByTypeAndCountry(records []DisasterRecord) []TypeCountryDeaths {
	index := make(map[string]int)
	var out []TypeCountryDeaths
	for _, r := range records {
		i, ok := index[r.DisasterType]
		if !ok {
			i = len(out)
			index[r.DisasterType] = i
			out = append(out, TypeCountryDeaths{DisasterType: r.DisasterType, ByCountry: make(map[string]int)})
		}
		d := r.Deaths()
		out[i].Total += d
		out[i].ByCountry[r.Country] += d
	}
	return out
}

// DamagePoint is one record plotted as adjusted damage against deaths.
type DamagePoint struct {
	Damage           float64 `json:"damage"`
	Deaths           int     `json:"deaths"`
	DisasterSubgroup string  `json:"disaster_subgroup"`
	DisasterType     string  `json:"disaster_type"`
	Country          string  `json:"country"`
}

// DamageVsDeaths returns a point for every record that has both adjusted damage and deaths.
func DamageVsDeaths(records []DisasterRecord) []DamagePoint {
	out := make([]DamagePoint, 0, len(records))
	for _, r := range records {
		if r.TotalDamageAdjusted == nil || r.TotalDeaths == nil {
			continue
		}
		out = append(out, DamagePoint{
			Damage:           *r.TotalDamageAdjusted,
			Deaths:           *r.TotalDeaths,
			DisasterSubgroup: r.DisasterSubgroup,
			DisasterType:     r.DisasterType,
			Country:          r.Country,
		})
	}
	return out
}
